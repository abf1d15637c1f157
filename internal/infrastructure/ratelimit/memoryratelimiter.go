package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter keeps one token bucket per key in process memory. It is used when
// Redis is disabled.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	policy   Policy
	limiters map[string]*rate.Limiter
}

func NewMemoryRateLimiter(policy Policy) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		policy:   policy,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.policy.Enabled() {
		return true, nil
	}

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		every := l.policy.Window / time.Duration(l.policy.Requests)
		lim = rate.NewLimiter(rate.Every(every), l.policy.Requests)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow(), nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.limiters, key)
	l.mu.Unlock()
	return nil
}
