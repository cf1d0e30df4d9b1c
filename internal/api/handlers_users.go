// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

// userQuery holds the parameters of the per-user endpoints.
type userQuery struct {
	UserID   int64   `json:"user_id" validate:"gte=1"`
	RunID    string  `json:"run_id" validate:"omitempty,max=64"`
	Limit    int     `json:"limit" validate:"gte=1,lte=100"`
	MinTrust float64 `json:"min_trust" validate:"unit_interval"`
}

// parseUserQuery reads and validates the user query. It writes the error
// response and returns false on failure.
func parseUserQuery(w http.ResponseWriter, r *http.Request, defaultLimit int) (userQuery, bool) {
	userID, err := userIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return userQuery{}, false
	}

	q := userQuery{
		UserID:   userID,
		RunID:    r.URL.Query().Get("run_id"),
		Limit:    getIntParam(r, "limit", defaultLimit),
		MinTrust: getFloatParam(r, "min_trust", 0),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, apiErr)
		return userQuery{}, false
	}
	return q, true
}

// userResult loads the report and the result of q.UserID. It writes the
// error response and returns false on failure.
func (h *Handler) userResult(w http.ResponseWriter, r *http.Request, q userQuery) (analysis.UserResult, string, bool) {
	report := h.loadReport(w, r, q.RunID)
	if report == nil {
		return analysis.UserResult{}, "", false
	}

	result, err := report.User(q.UserID)
	if errors.Is(err, analysis.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, CodeUserNotFound, "User was not part of the analysis run", nil)
		return analysis.UserResult{}, "", false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to read user result", err)
		return analysis.UserResult{}, "", false
	}
	return result, report.RunID, true
}

// UserCurators returns the curators of {userID}.
//
// Query parameters:
//   - limit: maximum curators (1-100, default 20)
//   - min_trust: drop trust-path curators scoring below this value (0-1)
//   - run_id: read a specific run instead of the latest
func (h *Handler) UserCurators(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q, ok := parseUserQuery(w, r, 20)
	if !ok {
		return
	}
	result, runID, ok := h.userResult(w, r, q)
	if !ok {
		return
	}

	curators := result.Curators
	curators.Curators = filterCurators(curators.Curators, curators.Source, q.MinTrust, q.Limit)
	respondSuccess(w, http.StatusOK, curators, runID, start)
}

// UserRecommendations returns the artist recommendations of {userID}.
//
// Query parameters:
//   - limit: maximum recommendations (1-100, default 20)
//   - run_id: read a specific run instead of the latest
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q, ok := parseUserQuery(w, r, 20)
	if !ok {
		return
	}
	result, runID, ok := h.userResult(w, r, q)
	if !ok {
		return
	}

	recs := result.Recommendations
	if len(recs.Recommendations) > q.Limit {
		recs.Recommendations = recs.Recommendations[:q.Limit]
	}
	if recs.Recommendations == nil {
		recs.Recommendations = []recommend.Recommendation{}
	}
	respondSuccess(w, http.StatusOK, recs, runID, start)
}

// filterCurators applies min_trust to trust-path curators and caps the list.
// Fallback curators carry no trust score and are only capped.
func filterCurators(in []recommend.Curator, source recommend.CuratorSource, minTrust float64, limit int) []recommend.Curator {
	out := make([]recommend.Curator, 0, len(in))
	for _, c := range in {
		if source == recommend.SourceTrust && c.TrustScore < minTrust {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
