package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for ledgersync
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Sync Metrics
	RecordsSyncedTotal prometheus.CounterVec
	SyncProblemsTotal  prometheus.Counter
	SyncJobDuration    prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgersync_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledgersync_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgersync_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		RecordsSyncedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_records_synced_total",
				Help: "Records processed by sync jobs, by object type and outcome",
			},
			[]string{"object_type", "outcome"},
		),
		SyncProblemsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledgersync_sync_problems_total",
				Help: "Ids appended to the sync problem list",
			},
		),
		SyncJobDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgersync_sync_job_duration_seconds",
				Help:    "Sync job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
	}
}
