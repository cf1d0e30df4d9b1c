// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// listRunsQuery holds the query parameters of GET /api/v1/runs.
type listRunsQuery struct {
	Limit int `json:"limit" validate:"gte=1,lte=500"`
}

// runIDQuery holds a run id taken from the path or the query string.
type runIDQuery struct {
	RunID string `json:"run_id" validate:"omitempty,max=64"`
}

// ListRuns returns stored run summaries, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := listRunsQuery{Limit: getIntParam(r, "limit", 20)}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	runs, err := h.store.List(r.Context(), q.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to list analysis runs", err)
		return
	}
	respondSuccess(w, http.StatusOK, runs, "", start)
}

// LatestRun returns the full report of the newest completed run.
func (h *Handler) LatestRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := h.loadReport(w, r, "")
	if report == nil {
		return
	}
	respondSuccess(w, http.StatusOK, report, report.RunID, start)
}

// GetRun returns the full report of the {runID} path parameter.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := runIDQuery{RunID: chi.URLParam(r, "runID")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	report := h.loadReport(w, r, q.RunID)
	if report == nil {
		return
	}
	respondSuccess(w, http.StatusOK, report, report.RunID, start)
}

// TriggerRun queues an analysis run. Responds 202 when queued and 409 when a
// run is already queued or in progress.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.trigger == nil {
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, ErrRunsDisabled.Error(), nil)
		return
	}
	if !h.trigger.TriggerRun() {
		respondError(w, http.StatusConflict, CodeRunInProgress, "An analysis run is already queued", nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, http.StatusAccepted, map[string]interface{}{
		"queued": true,
	}, "", start)
}
