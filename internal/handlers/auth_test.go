package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/dto"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"secret": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"secret": testAdminSecret})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AdminSessionResponse
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))
	assert.NotEmpty(t, w.Result().Cookies())

	w = env.do(t, http.MethodGet, "/api/admin/session", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthHandler_SessionCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"secret": testAdminSecret})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/invitations", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	env := setupTestEnv(t)
	token := env.adminToken(t)

	w := env.do(t, http.MethodGet, "/api/admin/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out without a token is harmless
	w = env.do(t, http.MethodPost, "/api/admin/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndEvent(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status              string `json:"status"`
		Timestamp           string `json:"timestamp"`
		BlobCleanupFailures int64  `json:"blobCleanupFailures"`
	}
	decode(t, w, &health)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Timestamp)
	assert.Zero(t, health.BlobCleanupFailures)

	w = env.do(t, http.MethodGet, "/api/event", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"weddingDate":"2025-11-22T16:00:00Z"`), w.Body.String())
	assert.Contains(t, w.Body.String(), `"guestCapacity":120`)
}
