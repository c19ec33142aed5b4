// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pyarchinit_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pyarchinit_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MediaCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pyarchinit_media_cache_hits_total",
			Help: "Media cache hits by cache",
		},
		[]string{"cache"},
	)

	MediaCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pyarchinit_media_cache_misses_total",
			Help: "Media cache misses by cache",
		},
		[]string{"cache"},
	)

	StorageFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pyarchinit_storage_fetch_duration_seconds",
			Help:    "Remote storage fetch latency by outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)
)

// RecordCacheLookup counts a hit or a miss on the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		MediaCacheHits.WithLabelValues(cache).Inc()
		return
	}
	MediaCacheMisses.WithLabelValues(cache).Inc()
}

// RecordStorageFetch observes a remote storage fetch.
func RecordStorageFetch(outcome string, d time.Duration) {
	StorageFetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
