package ratelimit

import (
	"context"
	"time"
)

// Policy limits a key to Requests per Window.
type Policy struct {
	Requests int
	Window   time.Duration
}

func (p Policy) Enabled() bool {
	return p.Requests > 0 && p.Window > 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
