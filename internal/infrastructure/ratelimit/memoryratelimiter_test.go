package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	limiter := NewMemoryRateLimiter(Policy{Requests: 3, Window: time.Hour})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "a"))
	allowed, _ = limiter.Allow(ctx, "a")
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_DisabledPolicy(t *testing.T) {
	limiter := NewMemoryRateLimiter(Policy{})
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
