package handlers

import (
	"net/http"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/dto"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/middleware"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates the admin login flow.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login checks the shared secret and starts an admin session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	adminSession, err := h.authService.Login(c.Request.Context(), req.Secret)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyAdminToken, adminSession.Token)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session", err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminSessionResponse{
		Token:     adminSession.Token,
		ExpiresAt: adminSession.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout revokes the current token and clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.AdminToken(c); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Session reports the state of the admin token. Runs behind RequireAdmin.
func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := middleware.GetAdminClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"expiresAt":     claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}
