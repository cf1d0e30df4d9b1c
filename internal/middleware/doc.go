// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: request tracking through the X-Request-ID header and the
    logging context
  - Prometheus Metrics: request count, latency and in-flight instrumentation
    labeled by chi route pattern

Both are plain http.HandlerFunc wrappers. The api package adapts them to chi:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Usage Example - Request ID:

	handler := middleware.RequestID(func(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("handling request")
	})

Handlers read the id back with GetRequestID(r.Context()).
*/
package middleware
