// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rozgar_store_query_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_store_query_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"driver", "operation"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "API request latency in seconds",
			// Cache-miss requests include a full upstream sync.
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Sync
	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rozgar_sync_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"trigger"},
	)

	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_sync_runs_total",
			Help: "Total number of ingestion runs by trigger and outcome",
		},
		[]string{"trigger", "status"},
	)

	SyncPagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rozgar_sync_pages_fetched_total",
			Help: "Total number of upstream pages fetched",
		},
	)

	SyncRecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_sync_records_upserted_total",
			Help: "Total number of metric records upserted",
		},
		[]string{"fin_year"},
	)

	SyncRecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rozgar_sync_records_skipped_total",
			Help: "Upstream records dropped because a key field was missing",
		},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_sync_errors_total",
			Help: "Total number of ingestion errors by type",
		},
		[]string{"error_type"},
	)

	SyncLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rozgar_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last successful ingestion per fin year",
		},
		[]string{"fin_year"},
	)

	// Upstream
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_upstream_requests_total",
			Help: "Total number of data.gov.in requests by HTTP status",
		},
		[]string{"status_code"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rozgar_upstream_request_duration_seconds",
			Help:    "Latency of data.gov.in page requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_cache_hits_total",
			Help: "Projection cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgar_cache_misses_total",
			Help: "Projection cache misses",
		},
		[]string{"cache"},
	)

	// Refresh
	RefreshNextRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rozgar_refresh_next_run_timestamp_seconds",
			Help: "Unix time of the next scheduled refresh",
		},
	)
)

// RecordStoreQuery observes a store operation.
func RecordStoreQuery(driver, operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordSyncRun records the outcome of one ingestion run. errorType is
// empty for runs that finished without error.
func RecordSyncRun(trigger, finYear, status string, duration time.Duration, records int, errorType string) {
	SyncDuration.WithLabelValues(trigger).Observe(duration.Seconds())
	SyncRunsTotal.WithLabelValues(trigger, status).Inc()
	if records > 0 {
		SyncRecordsUpserted.WithLabelValues(finYear).Add(float64(records))
	}
	if errorType != "" {
		SyncErrors.WithLabelValues(errorType).Inc()
		return
	}
	SyncLastSuccess.WithLabelValues(finYear).Set(float64(time.Now().Unix()))
}

// RecordUpstreamRequest observes one page request. statusCode 0 means the
// request never got a response.
func RecordUpstreamRequest(statusCode int, duration time.Duration) {
	label := "error"
	if statusCode > 0 {
		label = strconv.Itoa(statusCode)
	}
	UpstreamRequestsTotal.WithLabelValues(label).Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
