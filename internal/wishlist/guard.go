package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = time.Minute

// ScoringGuard grants one process at a time the right to score an entry.
type ScoringGuard interface {
	Acquire(ctx context.Context, wishlistID string) (release func(context.Context) error, acquired bool, err error)
}

// redisStore defines the operations used by RedisGuard.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ScoringLockKey(wishlistID string) string
}

// RedisGuard implements ScoringGuard using Redis SETNX + TTL.
type RedisGuard struct {
	client redisStore
	ttl    time.Duration
}

// NewRedisGuard constructs a Redis-backed scoring guard.
func NewRedisGuard(client redisStore, ttl time.Duration) (*RedisGuard, error) {
	if client == nil {
		return nil, errors.New("redis client required for scoring guard")
	}
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &RedisGuard{client: client, ttl: ttl}, nil
}

// Acquire claims the entry for the guard TTL. The returned release frees the claim
// only while this caller still owns it.
func (g *RedisGuard) Acquire(ctx context.Context, wishlistID string) (func(context.Context) error, bool, error) {
	key := g.client.ScoringLockKey(wishlistID)
	owner := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, owner, g.ttl)
	if err != nil {
		return nil, false, fmt.Errorf("setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		value, err := g.client.Get(ctx, key)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return fmt.Errorf("read guard owner: %w", err)
		}
		if value != owner {
			return nil
		}
		if err := g.client.Del(ctx, key); err != nil {
			return fmt.Errorf("delete guard: %w", err)
		}
		return nil
	}
	return release, true, nil
}
