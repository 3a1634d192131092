package ratelimit

import (
	"context"
	"time"

	"github.com/automarketing/content-gateway/internal/shared/redis"
)

// RedisStore backs the limiter with shared Redis counters so limits hold
// across gateway replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a CounterStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr implements CounterStore via INCR plus window expiry.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return s.client.IncrWindow(ctx, "ratelimit:"+key, window)
}
