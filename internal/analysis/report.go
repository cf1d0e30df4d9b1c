// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"errors"
	"time"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

// ErrUserNotFound is returned when a report has no result for a user.
var ErrUserNotFound = errors.New("user not found in report")

// Report is the outcome of one analysis run.
type Report struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMS  int64     `json:"duration_ms"`

	Window Window `json:"window"`
	Counts Counts `json:"counts"`

	Graphs []graph.Summary `json:"graphs"`

	TopPageRank    []centrality.Ranked        `json:"top_pagerank"`
	TopInfluencers []centrality.NodeInfluence `json:"top_influencers"`

	// Centrality holds per-graph ranking highlights keyed by graph name.
	Centrality map[string]Highlights `json:"centrality"`

	Communities CommunityReport `json:"communities"`

	// TopArtists ranks artists by PageRank on the artist authority graph.
	TopArtists []centrality.Ranked `json:"top_artists"`

	Mutual    MutualReport    `json:"mutual_trust"`
	Users     []UserResult    `json:"users"`
	ColdStart ColdStartReport `json:"cold_start"`
}

// Window is the interaction date range of a run. Both ends are zero when the
// run was unbounded.
type Window struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Counts are the raw record counts of a run.
type Counts struct {
	Users        int `json:"users"`
	Edges        int `json:"edges"`
	Posts        int `json:"posts"`
	Engagements  int `json:"engagements"`
	MusicRecords int `json:"music_records"`
}

// Highlights are the top nodes of one graph per centrality measure.
type Highlights struct {
	TopDegree         []centrality.Ranked `json:"top_degree,omitempty"`
	TopInDegree       []centrality.Ranked `json:"top_in_degree,omitempty"`
	TopOutDegree      []centrality.Ranked `json:"top_out_degree,omitempty"`
	TopBetweenness    []centrality.Ranked `json:"top_betweenness"`
	TopEigenvector    []centrality.Ranked `json:"top_eigenvector"`
	EigenvectorMethod string              `json:"eigenvector_method"`
}

// CommunityReport describes the social graph partition.
type CommunityReport struct {
	Algorithm  centrality.Algorithm `json:"algorithm"`
	Count      int                  `json:"count"`
	Modularity float64              `json:"modularity"`

	// Sizes lists community sizes, largest first.
	Sizes []int `json:"sizes"`
}

// MutualReport summarizes reciprocal trust.
type MutualReport struct {
	Symmetry recommend.SymmetryReport `json:"symmetry"`

	// Top lists the strongest mutual relationships.
	Top []recommend.MutualRelationship `json:"top"`
}

// UserResult holds the curators and recommendations of one user.
type UserResult struct {
	UserID          int64                          `json:"user_id"`
	DisplayName     string                         `json:"display_name"`
	Curators        recommend.CuratorResult        `json:"curators"`
	Recommendations recommend.RecommendationResult `json:"recommendations"`
}

// ColdStartReport lists users without enough trust edges and compares trust
// and PageRank coverage.
type ColdStartReport struct {
	Users    []int64                   `json:"users"`
	Count    int                       `json:"count"`
	Coverage recommend.CoverageSummary `json:"coverage"`
}

// User returns the result for userID.
func (r *Report) User(userID int64) (UserResult, error) {
	for _, u := range r.Users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return UserResult{}, ErrUserNotFound
}

// highlights computes the top nodes of g per centrality measure.
func highlights(ranker *centrality.Engine, g *graph.Graph, n int) Highlights {
	m := ranker.Metrics(g)
	h := Highlights{
		TopBetweenness:    centrality.Top(m.Betweenness, n),
		TopEigenvector:    centrality.Top(m.Eigenvector, n),
		EigenvectorMethod: m.EigenvectorMethod,
	}
	if g.Directed() {
		h.TopInDegree = centrality.Top(m.InDegree, n)
		h.TopOutDegree = centrality.Top(m.OutDegree, n)
	} else {
		h.TopDegree = centrality.Top(m.Degree, n)
	}
	return h
}

// communityReport describes p. A failed detection yields an empty report for
// the given algorithm.
func communityReport(p centrality.Partition, ok bool, algorithm centrality.Algorithm) CommunityReport {
	r := CommunityReport{Algorithm: algorithm, Sizes: []int{}}
	if !ok {
		return r
	}
	r.Count = p.Count
	r.Modularity = p.Modularity
	r.Sizes = make([]int, p.Count)
	for _, c := range p.Membership {
		if c >= 0 && c < p.Count {
			r.Sizes[c]++
		}
	}
	return r
}
