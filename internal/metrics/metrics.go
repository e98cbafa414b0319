// Package metrics exposes Prometheus instrumentation for the upstream client
// and the catalog cache.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephemeris_upstream_requests_total",
			Help: "Total number of upstream API requests by endpoint and status code.",
		},
		[]string{"endpoint", "code"},
	)

	upstreamRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ephemeris_upstream_request_seconds",
			Help:    "Upstream API request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	upstreamRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ephemeris_upstream_retries_total",
			Help: "Total number of retries after quota (429) responses.",
		},
	)

	rateLimitWaitSeconds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ephemeris_rate_limit_wait_seconds_total",
			Help: "Cumulative seconds spent waiting on the request pacing discipline.",
		},
	)

	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephemeris_catalog_cache_hits_total",
			Help: "Catalog cache hits by slot.",
		},
		[]string{"slot"},
	)

	cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephemeris_catalog_cache_misses_total",
			Help: "Catalog cache misses by slot.",
		},
		[]string{"slot"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal)
	prometheus.MustRegister(upstreamRequestSeconds)
	prometheus.MustRegister(upstreamRetriesTotal)
	prometheus.MustRegister(rateLimitWaitSeconds)
	prometheus.MustRegister(cacheHitsTotal)
	prometheus.MustRegister(cacheMissesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// normalizeEndpoint collapses per-satellite endpoint paths to a single label
// so that metric cardinality stays bounded regardless of how many distinct
// satellites are queried.
func normalizeEndpoint(endpoint string) string {
	parts := strings.Split(endpoint, "/")
	if len(parts) >= 3 && parts[0] == "satellites" {
		parts[1] = "{id}"
		return strings.Join(parts, "/")
	}
	return endpoint
}

// ObserveUpstreamRequest records one upstream request outcome and duration.
func ObserveUpstreamRequest(endpoint, code string, seconds float64) {
	ep := normalizeEndpoint(endpoint)
	upstreamRequestsTotal.WithLabelValues(ep, code).Inc()
	upstreamRequestSeconds.WithLabelValues(ep).Observe(seconds)
}

// IncUpstreamRetry counts one retry after a quota response.
func IncUpstreamRetry() {
	upstreamRetriesTotal.Inc()
}

// AddRateLimitWait accumulates time spent in the pacing wait.
func AddRateLimitWait(seconds float64) {
	rateLimitWaitSeconds.Add(seconds)
}

// IncCacheHit counts a catalog cache hit for the named slot.
func IncCacheHit(slot string) {
	cacheHitsTotal.WithLabelValues(slot).Inc()
}

// IncCacheMiss counts a catalog cache miss for the named slot.
func IncCacheMiss(slot string) {
	cacheMissesTotal.WithLabelValues(slot).Inc()
}
