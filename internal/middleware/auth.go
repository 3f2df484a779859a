package middleware

import (
	"context"
	"errors"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/constants"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AdminAuthenticator verifies admin tokens.
type AdminAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.RegisteredClaims, error)
}

// RequireAdmin rejects requests without a valid admin token, taken from the
// Authorization header or, failing that, from the session.
func RequireAdmin(authn AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authn.Authenticate(c.Request.Context(), AdminToken(c))
		if err != nil {
			if errors.Is(err, services.ErrAdminUnauthorized) {
				apierrors.Unauthorized(c, "Admin authentication required")
			} else {
				apierrors.ServiceUnavailable(c, "Could not verify admin session", err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAdmin, true)
		c.Set(constants.ContextKeyAdminClaims, claims)
		c.Next()
	}
}

// OptionalAdmin marks the request as admin when a valid token is present and never aborts.
func OptionalAdmin(authn AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := AdminToken(c); token != "" {
			if claims, err := authn.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(constants.ContextKeyAdmin, true)
				c.Set(constants.ContextKeyAdminClaims, claims)
			}
		}
		c.Next()
	}
}

// AdminToken returns the bearer token, or the token stored in the session.
func AdminToken(c *gin.Context) string {
	if token, err := auth.ExtractTokenFromHeader(c.Request); err == nil {
		return token
	}
	if token, ok := sessions.Default(c).Get(constants.SessionKeyAdminToken).(string); ok {
		return token
	}
	return ""
}

// IsAdmin reports whether an admin middleware accepted the request.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyAdmin)
}

// GetAdminClaims retrieves the verified token claims from context
func GetAdminClaims(c *gin.Context) (*jwt.RegisteredClaims, bool) {
	value, exists := c.Get(constants.ContextKeyAdminClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwt.RegisteredClaims)
	return claims, ok
}
