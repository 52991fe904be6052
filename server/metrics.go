package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instrumentation for the Serve Adapter.
// Grounded on the metrics-registry pattern used by the pack's sidechain
// backend (internal/metrics/metrics.go), trimmed to the handful of series
// this engine actually emits.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHitsTotal  prometheus.Counter
	cacheMissTotal  prometheus.Counter
}

var (
	metricsInstance *metrics
	metricsOnce     sync.Once
)

func newMetrics() *metrics {
	metricsOnce.Do(func() {
		metricsInstance = &metrics{
			requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "fprint_http_requests_total",
				Help: "Total HTTP requests handled by the serve adapter.",
			}, []string{"route", "status"}),
			requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "fprint_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			}, []string{"route"}),
			cacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "fprint_query_cache_hits_total",
				Help: "Query results served from the Redis result cache.",
			}),
			cacheMissTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "fprint_query_cache_misses_total",
				Help: "Query results that required running the matcher.",
			}),
		}
	})
	return metricsInstance
}
