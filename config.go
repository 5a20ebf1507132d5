// config.go
// ----------
// This file defines the ClientConfig structure, the per-client tunables for
// caching, traffic shaping, retries, and timeouts. Zero values mean "use the
// default"; WithDefaults fills them in so clients never have to re-check.
package databridge

import "time"

// Defaults for ClientConfig fields left at their zero value.
const (
	DefaultCacheSize        = 1000
	DefaultCacheTTL         = 24 * time.Hour
	DefaultRateLimitCalls   = 5
	DefaultRateLimitPeriod  = 1 * time.Second
	DefaultConcurrencyLimit = 10
	DefaultLanguage         = "en"
)

// ClientConfig carries the settings shared by upstream API clients.
type ClientConfig struct {
	// APIKey is the upstream service key, stored exactly as issued. The
	// key is already percent-encoded by the issuer and must not be
	// encoded again when placed on a request URL.
	APIKey string

	// Language is the default language for responses. Individual calls
	// may override it.
	Language string

	// BaseURL overrides the upstream base URL. Used by tests to point a
	// client at a local server.
	BaseURL string

	CacheSize int
	CacheTTL  time.Duration

	RateLimitCalls   int
	RateLimitPeriod  time.Duration
	ConcurrencyLimit int64

	Retry          RetryPolicy
	RequestTimeout time.Duration
}

// WithDefaults returns a copy of c with every zero-valued field replaced by
// its default.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.RateLimitCalls <= 0 {
		c.RateLimitCalls = DefaultRateLimitCalls
	}
	if c.RateLimitPeriod <= 0 {
		c.RateLimitPeriod = DefaultRateLimitPeriod
	}
	if c.ConcurrencyLimit <= 0 {
		c.ConcurrencyLimit = DefaultConcurrencyLimit
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if c.Retry.BaseBackoff <= 0 {
		c.Retry.BaseBackoff = DefaultBaseBackoff
	}
	if c.Retry.MaxBackoff <= 0 {
		c.Retry.MaxBackoff = DefaultMaxBackoff
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}
