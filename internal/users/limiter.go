package users

import (
	"context"
	"time"

	"poi-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements AttemptLimiter on a shared redis instance, so the
// limit holds across API replicas.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

var _ AttemptLimiter = (*RedisLimiter)(nil)

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *RedisLimiter) Exhausted(ctx context.Context, key string) (bool, error) {
	return utils.AttemptsExhausted(ctx, l.rdb, key, l.limit)
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	_, err := utils.RecordFailedAttempt(ctx, l.rdb, key, l.limit, l.window)
	return err
}

func (l *RedisLimiter) Clear(ctx context.Context, key string) error {
	return utils.ClearAttempts(ctx, l.rdb, key)
}
