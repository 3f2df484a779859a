package auth

import (
	"context"
	"sync"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/go-redis/redis/v8"
)

// Revoker remembers logged-out token IDs until the tokens would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, constants.RevokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.client.Exists(ctx, constants.RevokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// MemoryRevoker is the single-process fallback when redis is not configured.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]
	return ok && r.now().Before(until), nil
}
