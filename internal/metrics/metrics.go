// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_fetched_total",
			Help: "Total number of rows fetched by the analysis data source",
		},
		[]string{"table"},
	)

	// Analysis Metrics
	AnalysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"}, // "success", "error", "canceled"
	)

	AnalysisRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_run_duration_seconds",
			Help:    "Duration of analysis runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	AnalysisLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_last_success_timestamp",
			Help: "Unix timestamp of the last successful analysis run",
		},
	)

	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_nodes",
			Help: "Number of nodes in each graph of the latest run",
		},
		[]string{"graph"},
	)

	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_edges",
			Help: "Number of edges in each graph of the latest run",
		},
		[]string{"graph"},
	)

	CuratorResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_results_total",
			Help: "Total number of per-user curator results by source",
		},
		[]string{"source"}, // "trust", "pagerank_fallback"
	)

	ColdStartUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cold_start_users",
			Help: "Number of users without enough trust edges in the latest run",
		},
	)

	// Report Store Metrics
	ReportStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_store_operations_total",
			Help: "Total number of report store operations",
		},
		[]string{"operation", "result"}, // result: "success", "not_found", "error"
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic", "result"}, // result: "success", "failure", "rejected"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
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
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordRowsFetched records rows returned by a fetch
func RecordRowsFetched(table string, rows int) {
	DBRowsFetched.WithLabelValues(table).Add(float64(rows))
}

// RecordAnalysisRun records the outcome of an analysis run
func RecordAnalysisRun(status string, duration time.Duration) {
	AnalysisRunsTotal.WithLabelValues(status).Inc()
	AnalysisRunDuration.Observe(duration.Seconds())
	if status == "success" {
		AnalysisLastSuccess.SetToCurrentTime()
	}
}

// RecordGraphSize records the size of a built graph
func RecordGraphSize(graph string, nodes, edges int) {
	GraphNodes.WithLabelValues(graph).Set(float64(nodes))
	GraphEdges.WithLabelValues(graph).Set(float64(edges))
}

// RecordCuratorSource counts a per-user curator result
func RecordCuratorSource(source string) {
	CuratorResults.WithLabelValues(source).Inc()
}

// SetColdStartUsers records the cold-start user count of the latest run
func SetColdStartUsers(n int) {
	ColdStartUsers.Set(float64(n))
}

// RecordReportStoreOperation records a report store operation
func RecordReportStoreOperation(operation, result string) {
	ReportStoreOperations.WithLabelValues(operation, result).Inc()
}

// RecordEventPublished records a publish attempt
func RecordEventPublished(topic, result string) {
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
