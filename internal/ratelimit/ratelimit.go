// Package ratelimit throttles unauthenticated endpoints per client IP using
// a sliding window. Windows live in process memory or, when Redis is
// configured, in a sorted set per key so every replica shares them.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store records a hit for key and reports whether it fits in the window.
// Rejected hits are not recorded.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
