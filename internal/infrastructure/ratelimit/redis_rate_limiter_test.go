package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Policy{Requests: 5, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "create:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "create:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "create:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are independent")
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Policy{Requests: 1, Window: time.Minute})
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "login:1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:1")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "login:1"))

	allowed, err = limiter.Allow(ctx, "login:1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Policy{Requests: 1, Window: time.Minute})
	ctx := context.Background()

	base := time.Now()
	limiter.now = func() time.Time { return base }
	allowed, err := limiter.Allow(ctx, "slide")
	require.NoError(t, err)
	assert.True(t, allowed)

	limiter.now = func() time.Time { return base.Add(2 * time.Minute) }
	allowed, err = limiter.Allow(ctx, "slide")
	require.NoError(t, err)
	assert.True(t, allowed)
}
