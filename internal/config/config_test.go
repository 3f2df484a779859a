package config

import (
	"testing"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "secret")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, constants.GuestRemovalKeep, cfg.GuestRemovalPolicy)
	assert.Equal(t, constants.DefaultCodeGenerationAttempts, cfg.CodeGenerationAttempts)
	assert.Equal(t, int64(constants.DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, cfg.SessionSecret, cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestExposeErrorDetails_RequiresDevMode(t *testing.T) {
	t.Setenv("GIN_MODE", "")
	t.Setenv("DEV_MODE", "")

	cfg := Load()
	assert.Equal(t, "debug", cfg.GinMode)
	assert.False(t, cfg.ExposeErrorDetails())

	t.Setenv("DEV_MODE", "true")
	assert.True(t, Load().ExposeErrorDetails())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("FRONTEND_URL", "https://front.test")
	t.Setenv("DEV_MODE", "yes")
	t.Setenv("ADMIN_TOKEN_TTL", "30m")
	t.Setenv("GUEST_CAPACITY", "80")
	t.Setenv("WEDDING_DATE", "2026-06-13T17:30:00-05:00")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, []string{"https://a.test", "https://b.test", "https://front.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.DevMode)
	assert.True(t, cfg.ExposeErrorDetails())
	assert.Equal(t, 30*time.Minute, cfg.AdminTokenTTL)
	assert.Equal(t, 80, cfg.GuestCapacity)
	assert.Equal(t, 2026, cfg.WeddingDate.Year())
	assert.Equal(t, int64(constants.DefaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		GinMode:                "release",
		DBDriver:               "oracle",
		StorageDriver:          "ftp",
		SessionSecret:          "default-secret-key-change-me",
		AdminTokenTTL:          0,
		GuestRemovalPolicy:     "shrink",
		CodeGenerationAttempts: 0,
		MaxUploadBytes:         0,
		GuestCapacity:          -1,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"DB_DRIVER",
		"STORAGE_DRIVER",
		"ADMIN_SECRET",
		"ADMIN_TOKEN_TTL",
		"SESSION_SECRET",
		"GUEST_REMOVAL_POLICY",
		"CODE_GENERATION_ATTEMPTS",
		"MAX_UPLOAD_BYTES",
		"GUEST_CAPACITY",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.False(t, cfg.ExposeErrorDetails())
}
