package databridge

import (
	"context"
	"time"
)

// Defaults applied when a RetryPolicy field is zero.
const (
	DefaultMaxAttempts = 3
	DefaultBaseBackoff = 1 * time.Second
	DefaultMaxBackoff  = 10 * time.Second
)

// RetryPolicy re-runs a full dispatch sequence on transient failure with
// capped exponential backoff. Each attempt is a complete request: the rate
// gate, the HTTP exchange, and response parsing all run again, so a retried
// call still pays the rate limit.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryPolicy returns the policy used when callers configure nothing.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseBackoff: DefaultBaseBackoff,
		MaxBackoff:  DefaultMaxBackoff,
	}
}

// Do runs fn until it succeeds, fails terminally, or attempts run out.
// Only errors for which IsTransient holds are retried; any other error is
// returned to the caller as-is after the first occurrence. When attempts
// run out the last error is returned unchanged so the caller sees the real
// failure, not a wrapper.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(p.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// backoff returns the wait after the given zero-based attempt index:
// base, 2*base, 4*base, ... capped at MaxBackoff.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	base := p.BaseBackoff
	if base <= 0 {
		base = DefaultBaseBackoff
	}
	maxWait := p.MaxBackoff
	if maxWait <= 0 {
		maxWait = DefaultMaxBackoff
	}
	if attempt > 30 {
		attempt = 30
	}
	d := base * time.Duration(1<<uint(attempt))
	if d > maxWait || d < 0 {
		d = maxWait
	}
	return d
}
