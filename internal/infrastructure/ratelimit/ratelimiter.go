package ratelimit

import (
	"context"
	"time"
)

// Limits is the per-client request budget over sliding windows. A zero limit
// disables that window.
type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter gates request handling per client key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
