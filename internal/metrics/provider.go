package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Provider request metrics
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Total number of provider API requests",
		},
		[]string{"provider", "operation", "outcome"},
	)

	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swap",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Provider API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	relayFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "provider",
			Name:      "relay_fallbacks_total",
			Help:      "Total number of rate-limited requests retried through the relay",
		},
		[]string{"provider", "operation"},
	)

	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of route cache hits",
		},
		[]string{"provider"},
	)

	cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of route cache misses",
		},
		[]string{"provider"},
	)
)

// ObserveProviderRequest records one provider API call.
func ObserveProviderRequest(provider, operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	providerRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	providerRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// ObserveRelayFallback records a rate-limited request that was retried
// through the relay.
func ObserveRelayFallback(provider, operation string) {
	relayFallbacksTotal.WithLabelValues(provider, operation).Inc()
}

// ObserveCacheHit records a cache hit for the given provider.
func ObserveCacheHit(provider string) {
	cacheHitsTotal.WithLabelValues(provider).Inc()
}

// ObserveCacheMiss records a cache miss for the given provider.
func ObserveCacheMiss(provider string) {
	cacheMissesTotal.WithLabelValues(provider).Inc()
}
