package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// Revoker remembers token nonces that must no longer be accepted.
type Revoker interface {
	// Revoke denies nonce for ttl. A ttl of zero keeps it denied forever.
	Revoke(ctx context.Context, nonce string, ttl time.Duration) error
	IsRevoked(ctx context.Context, nonce string) (bool, error)
}

// RedisRevoker keeps the denylist in Redis so every instance sees it.
type RedisRevoker struct {
	rdb *redis.Client
}

func NewRedisRevoker(rdb *redis.Client) *RedisRevoker {
	return &RedisRevoker{rdb: rdb}
}

func (r *RedisRevoker) Revoke(ctx context.Context, nonce string, ttl time.Duration) error {
	return r.rdb.Set(ctx, revokedKeyPrefix+nonce, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, nonce string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+nonce).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevoker is a single-process denylist, used when Redis isn't configured.
type MemoryRevoker struct {
	mu      sync.Mutex
	entries map[string]time.Time // zero time: no expiry
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{entries: make(map[string]time.Time), now: time.Now}
}

func (r *MemoryRevoker) Revoke(_ context.Context, nonce string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var until time.Time
	if ttl > 0 {
		until = r.now().Add(ttl)
	}
	r.entries[nonce] = until
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, nonce string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.entries[nonce]
	if !ok {
		return false, nil
	}
	if !until.IsZero() && !r.now().Before(until) {
		delete(r.entries, nonce)
		return false, nil
	}
	return true, nil
}
