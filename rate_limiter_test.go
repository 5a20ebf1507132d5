package databridge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateBoundsConcurrency(t *testing.T) {
	const limit = 3
	gate := NewGate(1000, time.Second, limit)

	var inFlight, peak int64
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, gate.Acquire(context.Background()))
			defer gate.Release()

			n := atomic.AddInt64(&inFlight, 1)
			for {
				old := atomic.LoadInt64(&peak)
				if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(limit))
	assert.Greater(t, atomic.LoadInt64(&peak), int64(0))
}

func TestGateRateLimitsCalls(t *testing.T) {
	// 2 calls per 100ms with a burst of 2: the third acquire must wait.
	gate := NewGate(2, 100*time.Millisecond, 10)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, gate.Acquire(context.Background()))
		gate.Release()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestGateAcquireHonorsCancellation(t *testing.T) {
	gate := NewGate(1000, time.Second, 1)
	require.NoError(t, gate.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- gate.Acquire(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("acquire did not observe cancellation")
	}
	gate.Release()
}

func TestGateDefensiveDefaults(t *testing.T) {
	gate := NewGate(0, 0, 0)
	require.NoError(t, gate.Acquire(context.Background()))
	gate.Release()
}
