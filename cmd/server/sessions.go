package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// newSessionStore puts sessions and token revocation in Redis when it is
// configured, and falls back to cookie sessions with in-memory revocation.
// The returned func releases the Redis client.
func newSessionStore(cfg *config.Config, zlog *zap.Logger) (sessions.Store, auth.Revoker, func(), error) {
	var (
		store   sessions.Store
		revoker auth.Revoker
		closer  = func() {}
	)

	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
		}
		revoker = auth.NewRedisRevoker(client)

		store, err = redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		closer = func() { client.Close() }
	} else {
		zlog.Warn("REDIS_HOST not set, using cookie sessions and in-memory token revocation")
		revoker = auth.NewMemoryRevoker()
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.AdminTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, revoker, closer, nil
}
