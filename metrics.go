package databridge

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments upstream request orchestration. A nil *Metrics is
// valid and records nothing, so callers never need to guard call sites.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	inFlight        prometheus.Gauge
}

// NewMetrics registers the full metric set under the given namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream HTTP requests by endpoint and outcome.",
		}, []string{"endpoint", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream HTTP request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		retriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Retried upstream attempts.",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Responses served from the in-memory cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache lookups that fell through to the upstream.",
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_in_flight_requests",
			Help:      "Upstream requests currently in flight.",
		}),
	}
}

// ObserveRequest records one completed upstream exchange.
func (m *Metrics) ObserveRequest(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, status).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Retry records one retried attempt.
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.retriesTotal.Inc()
}

// CacheHit records a cache lookup served locally.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss records a cache lookup that went upstream.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// RequestStarted marks a request entering flight; the returned func marks
// it done.
func (m *Metrics) RequestStarted() func() {
	if m == nil {
		return func() {}
	}
	m.inFlight.Inc()
	return m.inFlight.Dec
}
