// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/reportstore"
)

// ReportStore reads stored analysis reports.
type ReportStore interface {
	Latest(ctx context.Context) (*analysis.Report, error)
	Get(ctx context.Context, runID string) (*analysis.Report, error)
	List(ctx context.Context, limit int) ([]reportstore.RunSummary, error)
}

// RunTrigger queues an analysis run. TriggerRun returns false when a run is
// already queued or in progress.
type RunTrigger interface {
	TriggerRun() bool
}

// Pinger checks connectivity of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StateReporter reports the circuit breaker state of a dependency.
type StateReporter interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, report lookup (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_runs.go: run listing, lookup and triggering
//   - handlers_users.go: per-user curators and recommendations
//   - handlers_graphs.go: graph summaries and communities
type Handler struct {
	config    *config.Config
	store     ReportStore
	db        Pinger
	source    StateReporter
	trigger   RunTrigger
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// store serves every report endpoint; db is pinged by the health endpoints
// and may be nil when the server runs without a database.
//
// Example:
//
//	handler := api.NewHandler(cfg, store, db)
//	handler.SetRunTrigger(scheduler)
//	router := api.NewRouter(handler, cfg.Server)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(cfg *config.Config, store ReportStore, db Pinger) *Handler {
	return &Handler{
		config:    cfg,
		store:     store,
		db:        db,
		startTime: time.Now(),
	}
}

// SetRunTrigger enables POST /api/v1/runs.
//
// Thread Safety: should be called once during startup.
func (h *Handler) SetRunTrigger(t RunTrigger) {
	h.trigger = t
}

// SetSourceState exposes the data source breaker state on the health endpoint.
//
// Thread Safety: should be called once during startup.
func (h *Handler) SetSourceState(s StateReporter) {
	h.source = s
}

// loadReport returns the report named by the run_id query parameter, or the
// latest report. It writes the error response and returns nil on failure.
func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request, runID string) *analysis.Report {
	var (
		report *analysis.Report
		err    error
	)
	if runID != "" {
		report, err = h.store.Get(r.Context(), runID)
	} else {
		report, err = h.store.Latest(r.Context())
	}

	switch {
	case err == nil:
		return report
	case errors.Is(err, reportstore.ErrNotFound) && runID != "":
		respondError(w, http.StatusNotFound, CodeNotFound, "Analysis run not found", nil)
	case errors.Is(err, reportstore.ErrNotFound):
		respondError(w, http.StatusNotFound, CodeNoData, "No analysis run has completed yet", nil)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to load analysis report", err)
	}
	return nil
}
