// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache metrics, labelled by cache name.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses (absent or expired)",
		},
		[]string{"cache"},
	)

	CacheExpirations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_expirations_total",
			Help: "Total number of entries removed because their TTL elapsed",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries evicted by the size bound (LRU)",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of stored entries, including not yet swept expired ones",
		},
		[]string{"cache"},
	)

	CacheComputeShared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_compute_shared_total",
			Help: "Cache misses that joined an in-flight computation instead of starting one",
		},
		[]string{"cache"},
	)

	// Ranking metrics, labelled by pipeline: creators, shows, featured, categories.
	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_compute_duration_seconds",
			Help:    "Duration of uncached ranking computations",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"pipeline"},
	)

	RankingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_errors_total",
			Help: "Total number of failed ranking computations",
		},
		[]string{"pipeline"},
	)

	// CircuitBreakerState is 0=closed, 1=half-open, 2=open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
