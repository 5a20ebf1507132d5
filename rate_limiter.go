// rate_limiter.go
// ----------------
// This file defines the Gate type, which shapes outbound traffic toward the
// upstream open-data APIs. Two independent checks guard every dispatch:
//
// - A token-bucket rate limit (N calls per period) smoothing request bursts.
// - A weighted semaphore capping the number of requests in flight at once.
//
// Both checks block until satisfied and honor context cancellation, so a
// caller abandoning a request never leaks a slot.
package databridge

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Gate combines rate limiting and concurrency limiting for upstream calls.
type Gate struct {
	limiter *rate.Limiter
	slots   *semaphore.Weighted
}

// NewGate builds a Gate allowing calls requests per period with at most
// concurrency requests in flight. Non-positive arguments fall back to the
// most conservative setting.
func NewGate(calls int, period time.Duration, concurrency int64) *Gate {
	if calls <= 0 {
		calls = 1
	}
	if period <= 0 {
		period = time.Second
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Every(period/time.Duration(calls)), calls),
		slots:   semaphore.NewWeighted(concurrency),
	}
}

// Acquire blocks until both a rate token and a concurrency slot are
// available, or the context is canceled. On success the caller must call
// Release exactly once when the request finishes.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	return g.slots.Acquire(ctx, 1)
}

// Release returns the concurrency slot taken by a successful Acquire.
func (g *Gate) Release() {
	g.slots.Release(1)
}
