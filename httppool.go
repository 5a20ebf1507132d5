package databridge

import (
	"net/http"
	"sync"
	"time"
)

// Connection pool sizing shared by every upstream client in the process.
const (
	DefaultRequestTimeout = 30 * time.Second
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 20
	idleConnTimeout       = 90 * time.Second
)

// Pool owns the pooled HTTP client shared by all upstream calls. The
// underlying client is created lazily on first use so that constructing a
// Pool (for example at config-load time) never allocates sockets, and Close
// may be called any number of times.
type Pool struct {
	mu      sync.Mutex
	timeout time.Duration
	client  *http.Client
}

// NewPool returns a Pool whose client will use the given per-request
// timeout. A non-positive timeout falls back to DefaultRequestTimeout.
func NewPool(timeout time.Duration) *Pool {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Pool{timeout: timeout}
}

// Client returns the shared client, creating it on first call. Subsequent
// calls return the same instance until Close.
func (p *Pool) Client() *http.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		p.client = &http.Client{
			Timeout: p.timeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				IdleConnTimeout:     idleConnTimeout,
			},
		}
	}
	return p.client
}

// Close releases pooled connections. Calling Close on a Pool that was never
// used, or closing twice, is a no-op. A later Client call rebuilds the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return
	}
	p.client.CloseIdleConnections()
	p.client = nil
}
