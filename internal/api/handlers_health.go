// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds dependency checks of the health endpoints.
const healthCheckTimeout = 2 * time.Second

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status            string     `json:"status"`
	DatabaseConnected bool       `json:"database_connected"`
	DataSourceState   string     `json:"data_source_state,omitempty"`
	LatestRunID       string     `json:"latest_run_id,omitempty"`
	LatestRunAt       *time.Time `json:"latest_run_completed_at,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}

// Health handles health check requests
//
// Status is "healthy" when the database answers and the data source breaker
// is not open, "degraded" otherwise. The endpoint always returns 200; use
// /health/ready for traffic decisions.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	health := HealthStatus{
		Status:            "healthy",
		DatabaseConnected: h.db != nil && h.db.Ping(ctx) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.source != nil {
		health.DataSourceState = h.source.State()
	}
	if !health.DatabaseConnected || health.DataSourceState == "open" {
		health.Status = "degraded"
	}

	if latest, err := h.store.Latest(ctx); err == nil {
		health.LatestRunID = latest.RunID
		completed := latest.CompletedAt
		health.LatestRunAt = &completed
	}

	respondSuccess(w, http.StatusOK, health, health.LatestRunID, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, "", time.Now())
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the database answers, 503 otherwise
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if h.db == nil || h.db.Ping(ctx) != nil {
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "Database is not reachable", nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"ready": true,
	}, "", start)
}
