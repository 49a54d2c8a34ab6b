package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core cache counters
	CacheRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traveltime_cache_requests_total",
			Help: "Total number of travel-time cache lookups",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltime_cache_hits_total",
			Help: "Total number of travel-time cache hits",
		},
		[]string{"level"},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traveltime_cache_misses_total",
			Help: "Total number of travel-time cache misses",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltime_cache_errors_total",
			Help: "Total number of cache storage errors (degraded to misses)",
		},
		[]string{"level", "kind"},
	)

	// Resolution outcomes: resolved, failed, not_applicable
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltime_resolutions_total",
			Help: "Total number of travel-time resolutions by outcome",
		},
		[]string{"outcome"},
	)

	// Transport call accounting
	TransportAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traveltime_transport_attempts_total",
			Help: "Total number of journey-planner calls, including retries",
		},
	)

	TransportRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traveltime_transport_retries_total",
			Help: "Total number of retried journey-planner calls",
		},
	)

	TransportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "traveltime_transport_duration_seconds",
			Help:    "Duration of journey-planner calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Single-flight sharing: callers served by another caller's in-flight call
	SingleFlightShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traveltime_singleflight_shared_total",
			Help: "Total number of resolutions served by a shared in-flight call",
		},
	)
)

// RecordCacheRequest records a cache lookup
func RecordCacheRequest() {
	CacheRequests.Inc()
}

// RecordCacheHit records a cache hit at the given level ("l1", "l2")
func RecordCacheHit(level string) {
	CacheHits.WithLabelValues(level).Inc()
}

// RecordCacheMiss records a cache miss across all tiers
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheError records a storage error degraded to a miss
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// RecordResolution records a resolution outcome
func RecordResolution(outcome string) {
	Resolutions.WithLabelValues(outcome).Inc()
}

// RecordTransportAttempt records one journey-planner call attempt
func RecordTransportAttempt() {
	TransportAttempts.Inc()
}

// RecordTransportRetry records a retried journey-planner call
func RecordTransportRetry() {
	TransportRetries.Inc()
}

// ObserveTransportDuration records the latency of a journey-planner call
func ObserveTransportDuration(d time.Duration) {
	TransportDuration.Observe(d.Seconds())
}

// RecordSingleFlightShared records a caller served by a shared in-flight call
func RecordSingleFlightShared() {
	SingleFlightShared.Inc()
}
