// Package tourism implements the Korea Tourism Organization content API
// client. Every public operation funnels through one execution path that
// layers a response cache, a rate/concurrency gate, retry with backoff,
// and response normalization over plain HTTP GETs.
package tourism

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	databridge "github.com/opendatakr/databridge"
)

// BaseURL is the Korean open-data portal host serving the tourism services.
const BaseURL = "http://apis.data.go.kr/B551011"

// Boilerplate query parameters attached to every request.
const (
	mobileOS       = "ETC"
	mobileAppName  = "MobileApp"
	responseFormat = "json"
)

// List endpoints sort by modification date with image-bearing records
// first.
const arrangeByModifiedWithImage = "Q"

// Endpoint suffixes, appended to the language-resolved service base.
const (
	endpointAreaBasedList     = "/areaBasedList2"
	endpointLocationBasedList = "/locationBasedList2"
	endpointSearchKeyword     = "/searchKeyword2"
	endpointSearchFestival    = "/searchFestival2"
	endpointSearchStay        = "/searchStay2"
	endpointDetailCommon      = "/detailCommon2"
	endpointDetailIntro       = "/detailIntro2"
	endpointDetailInfo        = "/detailInfo2"
	endpointDetailImage       = "/detailImage2"
	endpointAreaBasedSyncList = "/areaBasedSyncList2"
	endpointAreaCode          = "/areaCode2"
	endpointCategoryCode      = "/categoryCode2"
)

// ErrMissingAPIKey is returned by every operation until a service key is
// configured.
var ErrMissingAPIKey = errors.New("tourism API key must be provided")

// Client calls the tourism content services. The zero value is not usable;
// construct with New. Heavy members (cache, gate) are created lazily on
// the first call so that building a Client is free.
type Client struct {
	cfg     databridge.ClientConfig
	pool    *databridge.Pool
	ownPool bool
	logger  *zap.Logger
	metrics *databridge.Metrics

	initMu      sync.Mutex
	initialized bool
	baseURL     string
	cache       *databridge.ResponseCache
	gate        *databridge.Gate
	retry       databridge.RetryPolicy
}

// New builds a Client from cfg. pool may be shared with other clients; if
// nil the Client creates and owns its own. logger and metrics may be nil.
func New(cfg databridge.ClientConfig, pool *databridge.Pool, logger *zap.Logger, metrics *databridge.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		cfg:     cfg,
		pool:    pool,
		logger:  logger.With(zap.String("component", "tourism_client")),
		metrics: metrics,
	}
	if c.pool == nil {
		c.pool = databridge.NewPool(cfg.RequestTimeout)
		c.ownPool = true
	}
	return c
}

// ensureInit validates the key and builds the cache, gate, and retry
// policy exactly once.
func (c *Client) ensureInit() error {
	c.initMu.Lock()
	defer c.initMu.Unlock()
	if c.initialized {
		return nil
	}
	if c.cfg.APIKey == "" || c.cfg.APIKey == "missing_api_key" {
		return ErrMissingAPIKey
	}

	c.cfg = c.cfg.WithDefaults()
	base := c.cfg.BaseURL
	if base == "" {
		base = BaseURL
	}
	c.baseURL = base
	c.cache = databridge.NewResponseCache(c.cfg.CacheSize, c.cfg.CacheTTL)
	c.gate = databridge.NewGate(c.cfg.RateLimitCalls, c.cfg.RateLimitPeriod, c.cfg.ConcurrencyLimit)
	c.retry = c.cfg.Retry
	c.initialized = true

	c.logger.Info("tourism client initialized",
		zap.String("language", c.cfg.Language),
		zap.Duration("cache_ttl", c.cfg.CacheTTL),
		zap.Int("rate_limit_calls", c.cfg.RateLimitCalls),
		zap.Duration("rate_limit_period", c.cfg.RateLimitPeriod),
		zap.Int64("concurrency_limit", c.cfg.ConcurrencyLimit),
	)
	return nil
}

// DefaultLanguageCode returns the language the client falls back to when a
// call carries no override.
func (c *Client) DefaultLanguageCode() string {
	return resolveLanguage(c.cfg.Language, "")
}

// Close releases the connection pool if this client owns it. Shared pools
// are left for their owner to close. Safe to call more than once.
func (c *Client) Close() {
	if c.ownPool {
		c.pool.Close()
	}
}
