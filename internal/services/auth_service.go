package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAdminSecret = errors.New("invalid admin secret")
	ErrAdminUnauthorized  = errors.New("admin authentication required")
	ErrAdminNotConfigured = errors.New("admin secret is not configured")
)

// AdminSession describes an issued admin token.
type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService guards the admin dashboard with a shared secret and signed tokens.
type AuthService struct {
	secretHash []byte
	tokens     *auth.JWTManager
	revoker    auth.Revoker
	log        *zap.Logger
}

// NewAuthService accepts either a bcrypt hash or a plain secret; a plain
// secret is hashed once so every comparison goes through bcrypt.
func NewAuthService(secret, secretHash string, tokens *auth.JWTManager, revoker auth.Revoker, log *zap.Logger) (*AuthService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if revoker == nil {
		revoker = auth.NewMemoryRevoker()
	}

	hash := []byte(secretHash)
	if len(hash) == 0 {
		if secret == "" {
			return nil, ErrAdminNotConfigured
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin secret: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("ADMIN_SECRET_HASH is not a bcrypt hash: %w", err)
	}

	return &AuthService{
		secretHash: hash,
		tokens:     tokens,
		revoker:    revoker,
		log:        log,
	}, nil
}

// Login checks the shared secret and issues a signed admin token.
func (s *AuthService) Login(ctx context.Context, secret string) (*AdminSession, error) {
	if secret == "" {
		return nil, ErrInvalidAdminSecret
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)); err != nil {
		s.log.Warn("admin login rejected")
		return nil, ErrInvalidAdminSecret
	}

	token, claims, err := s.tokens.Generate(constants.AdminTokenSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}

	s.log.Info("admin login", zap.String("token_id", claims.ID))
	return &AdminSession{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authenticate verifies an admin token on every admin request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrAdminUnauthorized
	}

	claims, err := s.tokens.Verify(token)
	if err != nil || claims.Subject != constants.AdminTokenSubject {
		return nil, ErrAdminUnauthorized
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrAdminUnauthorized
	}
	return claims, nil
}

// Logout revokes token for the rest of its lifetime. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke admin token: %w", err)
	}
	s.log.Info("admin logout", zap.String("token_id", claims.ID))
	return nil
}
