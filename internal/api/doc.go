// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package api serves stored analysis reports over HTTP using the Chi router.

Endpoints:

	GET  /api/v1/health                              health with database and breaker state
	GET  /api/v1/health/live                         liveness probe
	GET  /api/v1/health/ready                        readiness probe (database reachable)
	GET  /api/v1/runs                                run summaries, newest first
	GET  /api/v1/runs/latest                         full report of the newest run
	GET  /api/v1/runs/{runID}                        full report of one run
	POST /api/v1/runs                                queue an analysis run (202 / 409)
	GET  /api/v1/users/{userID}/curators             curators of a user
	GET  /api/v1/users/{userID}/recommendations      artist recommendations of a user
	GET  /api/v1/graphs                              graph summaries and centrality highlights
	GET  /api/v1/communities                         communities, mutual trust, cold-start coverage
	GET  /metrics                                    Prometheus metrics

Every report endpoint reads the latest run unless a run_id query parameter
names another one. Responses use the models.APIResponse envelope; errors carry
one of the Code* constants.

Query parameters are validated with go-playground/validator through the
validation package; invalid values yield 400 VALIDATION_ERROR.

Middleware:

	RequestID -> RealIP -> Recoverer -> CORS -> Compress
	  /api/v1/health: permissive rate limit, security headers
	  /api/v1:        configured rate limit, security headers, Prometheus metrics
*/
package api
