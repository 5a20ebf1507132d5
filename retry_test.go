package databridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestRetryTransientExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return &ServerError{StatusCode: 500, URL: "u", Message: "boom"}
	})

	require.Error(t, err)
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, 3, calls)
}

func TestRetryTerminalStopsImmediately(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return &ClientError{StatusCode: 404, URL: "u", Message: "missing"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryProtocolErrorNotRetried(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return &ProtocolError{Message: "API error", ResultCode: "99", URL: "u"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &ConnectionError{URL: "u", Err: context.DeadlineExceeded}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 5, BaseBackoff: time.Hour, MaxBackoff: time.Hour}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, func() error {
			calls++
			return &ServerError{StatusCode: 502, URL: "u", Message: "bad gateway"}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("retry loop did not observe cancellation")
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	policy := RetryPolicy{BaseBackoff: time.Second, MaxBackoff: 10 * time.Second}

	assert.Equal(t, 1*time.Second, policy.backoff(0))
	assert.Equal(t, 2*time.Second, policy.backoff(1))
	assert.Equal(t, 4*time.Second, policy.backoff(2))
	assert.Equal(t, 8*time.Second, policy.backoff(3))
	assert.Equal(t, 10*time.Second, policy.backoff(4))
	assert.Equal(t, 10*time.Second, policy.backoff(20))
}
