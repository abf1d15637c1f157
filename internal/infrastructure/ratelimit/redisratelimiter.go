package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding-window limiter backed by a sorted set per key, so the
// limit holds across server instances.
type RedisRateLimiter struct {
	client *redis.Client
	policy Policy
	prefix string
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, policy Policy) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		policy: policy,
		prefix: "techflow:ratelimit",
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.policy.Enabled() {
		return true, nil
	}

	now := l.now()
	redisKey := l.key(key)
	windowStart := now.Add(-l.policy.Window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.policy.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(l.policy.Requests), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete rate limit key: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) key(identifier string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, identifier, l.policy.Window.String())
}
