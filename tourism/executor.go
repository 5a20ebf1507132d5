package tourism

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	databridge "github.com/opendatakr/databridge"
)

// execute is the single path every operation goes through:
//
//  1. Resolve the language and the matching service variant.
//  2. Probe the cache under the canonical key.
//  3. On a miss, run the dispatch under the retry policy.
//  4. Cache and return the normalized result.
//
// params holds only the semantic parameters; boilerplate and the service
// key are attached here. The cache key is derived before boilerplate is
// merged, so it reflects exactly what the caller asked for.
func (c *Client) execute(ctx context.Context, endpoint string, params map[string]string, languageOverride string) (*databridge.NormalizedResult, error) {
	if err := c.ensureInit(); err != nil {
		return nil, err
	}

	lang := resolveLanguage(c.cfg.Language, languageOverride)
	serviceBase := c.baseURL + "/" + LanguageServiceMap[lang]

	key := cacheKey(endpoint, params, lang)
	if cached, ok := c.cache.Get(key); ok {
		c.metrics.CacheHit()
		c.logger.Debug("cache hit", zap.String("cache_key", key))
		return cached, nil
	}
	c.metrics.CacheMiss()

	requestURL := c.buildURL(serviceBase, endpoint, params)
	errorURL := serviceBase + endpoint

	log := c.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("endpoint", endpoint),
		zap.String("language", lang),
	)

	var result *databridge.NormalizedResult
	attempt := 0
	err := c.retry.Do(ctx, func() error {
		attempt++
		if attempt > 1 {
			c.metrics.Retry()
			log.Debug("retrying request", zap.Int("attempt", attempt))
		}
		res, err := c.dispatch(ctx, endpoint, requestURL, errorURL)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		log.Warn("request failed", zap.Int("attempts", attempt), zap.Error(err))
		return nil, err
	}

	log.Debug("request succeeded",
		zap.Int("attempts", attempt),
		zap.Int("total_count", result.TotalCount),
	)
	c.cache.Put(key, result)
	return result, nil
}

// buildURL assembles the request URL. The caller parameters and boilerplate
// go through standard query encoding; the service key is issued already
// percent-encoded and is appended verbatim so it is not encoded twice.
func (c *Client) buildURL(serviceBase, endpoint string, params map[string]string) string {
	values := url.Values{}
	values.Set("MobileOS", mobileOS)
	values.Set("MobileApp", mobileAppName)
	values.Set("_type", responseFormat)
	for name, value := range params {
		values.Set(name, value)
	}
	return serviceBase + endpoint + "?" + values.Encode() + "&serviceKey=" + c.cfg.APIKey
}

// dispatch performs one complete attempt: gate, HTTP exchange, status
// classification, and body normalization.
func (c *Client) dispatch(ctx context.Context, endpoint, requestURL, errorURL string) (*databridge.NormalizedResult, error) {
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.gate.Release()

	done := c.metrics.RequestStarted()
	defer done()

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, databridge.ClassifyTransport(err, errorURL)
	}

	start := time.Now()
	resp, err := c.pool.Client().Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, "transport_error", time.Since(start))
		return nil, databridge.ClassifyTransport(err, errorURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, "transport_error", time.Since(start))
		return nil, databridge.ClassifyTransport(err, errorURL)
	}
	c.metrics.ObserveRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, databridge.ClassifyStatus(resp.StatusCode, errorURL, upstreamErrorMessage(resp.StatusCode, body))
	}
	return Normalize(body, errorURL)
}

// upstreamErrorMessage digs a human-readable message out of an error body
// when the upstream bothers to send one.
func upstreamErrorMessage(status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return "tourism API error: " + payload.Error
	}
	return "tourism API error: HTTP " + strconv.Itoa(status)
}
