package main

import (
	"testing"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSessionStore_CookieFallback(t *testing.T) {
	cfg := &config.Config{
		SessionSecret: "test-session-secret",
		AdminTokenTTL: time.Hour,
	}

	store, revoker, closeSessions, err := newSessionStore(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeSessions()

	assert.NotNil(t, store)
	assert.IsType(t, &auth.MemoryRevoker{}, revoker)
}

func TestNewSessionStore_UnreachableRedis(t *testing.T) {
	cfg := &config.Config{
		RedisHost:     "127.0.0.1",
		RedisPort:     "1",
		SessionSecret: "test-session-secret",
		AdminTokenTTL: time.Hour,
	}

	store, revoker, _, err := newSessionStore(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Nil(t, revoker)
}
