// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/graph"
)

// graphQuery holds the parameters of GET /api/v1/graphs.
type graphQuery struct {
	RunID string `json:"run_id" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"omitempty,oneof=social trust engagement quality_adjusted engagement_intensity user_artist artist_authority"`
}

// GraphsResponse is the payload of GET /api/v1/graphs.
type GraphsResponse struct {
	Graphs         []graph.Summary                `json:"graphs"`
	Centrality     map[string]analysis.Highlights `json:"centrality"`
	TopPageRank    []centrality.Ranked            `json:"top_pagerank"`
	TopInfluencers []centrality.NodeInfluence     `json:"top_influencers"`
	TopArtists     []centrality.Ranked            `json:"top_artists"`
}

// CommunitiesResponse is the payload of GET /api/v1/communities.
type CommunitiesResponse struct {
	Communities analysis.CommunityReport `json:"communities"`
	Mutual      analysis.MutualReport    `json:"mutual_trust"`
	ColdStart   analysis.ColdStartReport `json:"cold_start"`
}

// Graphs returns graph summaries and centrality highlights of a run.
//
// Query parameters:
//   - name: restrict summaries and highlights to one graph
//   - run_id: read a specific run instead of the latest
func (h *Handler) Graphs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := graphQuery{
		RunID: r.URL.Query().Get("run_id"),
		Name:  r.URL.Query().Get("name"),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	report := h.loadReport(w, r, q.RunID)
	if report == nil {
		return
	}

	resp := GraphsResponse{
		Graphs:         report.Graphs,
		Centrality:     report.Centrality,
		TopPageRank:    report.TopPageRank,
		TopInfluencers: report.TopInfluencers,
		TopArtists:     report.TopArtists,
	}
	if q.Name != "" {
		resp.Graphs = make([]graph.Summary, 0, 1)
		for _, s := range report.Graphs {
			if s.Name == q.Name {
				resp.Graphs = append(resp.Graphs, s)
			}
		}
		resp.Centrality = make(map[string]analysis.Highlights, 1)
		if hl, ok := report.Centrality[q.Name]; ok {
			resp.Centrality[q.Name] = hl
		}
	}

	respondSuccess(w, http.StatusOK, resp, report.RunID, start)
}

// Communities returns the community partition, mutual trust summary and
// cold-start coverage of a run.
func (h *Handler) Communities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := runIDQuery{RunID: r.URL.Query().Get("run_id")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	report := h.loadReport(w, r, q.RunID)
	if report == nil {
		return
	}

	respondSuccess(w, http.StatusOK, CommunitiesResponse{
		Communities: report.Communities,
		Mutual:      report.Mutual,
		ColdStart:   report.ColdStart,
	}, report.RunID, start)
}
