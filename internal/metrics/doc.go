// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package metrics provides Prometheus metrics for Curatorgraph.

Metrics are registered with the default registry through promauto and exposed
at /metrics by the API server:

	curl http://localhost:8088/metrics

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation,table} (histogram)
  - duckdb_query_errors_total{operation,table,error_type} (counter)
  - duckdb_rows_fetched_total{table} (counter)

Analysis:
  - analysis_runs_total{status} (counter)
  - analysis_run_duration_seconds (histogram)
  - analysis_last_success_timestamp (gauge)
  - graph_nodes{graph}, graph_edges{graph} (gauges, latest run)
  - curator_results_total{source} (counter)
  - cold_start_users (gauge, latest run)

Outer surfaces:
  - report_store_operations_total{operation,result}
  - events_published_total{topic,result}
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests, api_rate_limit_hits_total{endpoint}

Resilience:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "interaction_edges", time.Since(start), err)

Label cardinality is bounded: graph names, sources and statuses are fixed
sets, and DB error labels are truncated to 50 characters.
*/
package metrics
