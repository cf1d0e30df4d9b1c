// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"strconv"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// CuratorSource identifies the path that produced a curator list.
type CuratorSource string

const (
	// SourceTrust marks curators derived from trust edges.
	SourceTrust CuratorSource = "trust"

	// SourcePageRankFallback marks curators ranked by PageRank because the
	// user had too little trust signal.
	SourcePageRankFallback CuratorSource = "pagerank_fallback"
)

// Scope is the population PageRank fallback curators were drawn from.
type Scope string

const (
	// ScopeCommunity means curators share the user's community.
	ScopeCommunity Scope = "community"

	// ScopeGlobal means curators were drawn from the whole social graph.
	ScopeGlobal Scope = "global"
)

// FallbackReason explains why the PageRank fallback path was taken.
type FallbackReason string

const (
	// ReasonInsufficientTrustEdges means the user has fewer outgoing trust
	// edges than the configured minimum.
	ReasonInsufficientTrustEdges FallbackReason = "insufficient_trust_edges"

	// ReasonNoTrustedCurators means no trust curator passed the threshold.
	ReasonNoTrustedCurators FallbackReason = "no_trusted_curators"
)

// RecommendationType identifies the method that produced a recommendation.
type RecommendationType string

const (
	// TypeTrust recommendations come from trusted curators.
	TypeTrust RecommendationType = "trust"

	// TypePageRank recommendations come from the highest-ranked users.
	TypePageRank RecommendationType = "pagerank"

	// TypePageRankFallback recommendations come from fallback curators.
	TypePageRankFallback RecommendationType = "pagerank_fallback"
)

// Curator is a user whose music taste is recommended to another user.
type Curator struct {
	// UserID is the curator's user id.
	UserID int64 `json:"user_id"`

	// DisplayName defaults to "User_<id>" when unknown.
	DisplayName string `json:"display_name"`

	// TrustScore is set on the trust path.
	TrustScore float64 `json:"trust_score"`

	// WeightedInteractions is the trust edge weight toward the curator.
	WeightedInteractions float64 `json:"weighted_interactions,omitempty"`

	// RawWeight repeats WeightedInteractions for report consumers.
	RawWeight float64 `json:"raw_weight,omitempty"`

	// TotalPosts is the post count the trust score was normalized by.
	TotalPosts int `json:"total_posts,omitempty"`

	// IsMutual reports whether the curator also trusts the user.
	IsMutual bool `json:"is_mutual"`

	// PageRankScore is set on the fallback path.
	PageRankScore float64 `json:"pagerank_score,omitempty"`

	// Source is the path that produced the curator.
	Source CuratorSource `json:"source"`

	// Scope is set on the fallback path.
	Scope Scope `json:"scope,omitempty"`
}

// CuratorResult is a curator list together with the path that produced it.
type CuratorResult struct {
	UserID   int64         `json:"user_id"`
	Source   CuratorSource `json:"source"`
	Curators []Curator     `json:"curators"`

	// Reason is set when Source is SourcePageRankFallback.
	Reason FallbackReason `json:"fallback_reason,omitempty"`
}

// Attribution credits a curator for a recommendation.
type Attribution struct {
	UserID      int64   `json:"user_id"`
	DisplayName string  `json:"display_name"`
	TrustScore  float64 `json:"trust_score,omitempty"`
	PageRank    float64 `json:"pagerank_score,omitempty"`
	Affinity    float64 `json:"affinity"`
}

// Recommendation is an artist recommended through curators.
type Recommendation struct {
	ArtistName string `json:"artist_name"`

	// Score is the aggregate of the curators' weighted affinities.
	Score float64 `json:"aggregate_score"`

	// CuratorCount is the number of curators supporting the artist.
	CuratorCount int `json:"curator_count"`

	// TopCurators are the strongest supporting curators.
	TopCurators []Attribution `json:"top_curators"`

	Type RecommendationType `json:"recommendation_type"`
}

// RecommendationResult is a recommendation list with the curator path that
// produced it.
type RecommendationResult struct {
	UserID          int64            `json:"user_id"`
	Source          CuratorSource    `json:"source"`
	Recommendations []Recommendation `json:"recommendations"`
}

// MutualRelationship is a pair of users that trust each other.
type MutualRelationship struct {
	UserA MutualParty `json:"user_a"`
	UserB MutualParty `json:"user_b"`

	TrustAToB        float64 `json:"trust_a_to_b"`
	TrustBToA        float64 `json:"trust_b_to_a"`
	InteractionsAToB float64 `json:"interactions_a_to_b"`
	InteractionsBToA float64 `json:"interactions_b_to_a"`

	// MutualStrength is the weaker of the two trust scores.
	MutualStrength float64 `json:"mutual_strength"`

	// TrustSymmetry is the absolute difference of the two trust scores.
	TrustSymmetry float64 `json:"trust_symmetry"`

	// CombinedTrust is the mean of the two trust scores.
	CombinedTrust float64 `json:"combined_trust"`
}

// MutualParty is one side of a mutual relationship.
type MutualParty struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Posts       int    `json:"posts"`
}

// SymmetryReport summarizes a set of mutual relationships.
type SymmetryReport struct {
	Total             int       `json:"total_mutual_relationships"`
	AvgMutualStrength float64   `json:"avg_mutual_strength"`
	AvgTrustSymmetry  float64   `json:"avg_trust_symmetry"`
	Symmetric         int       `json:"symmetric_relationships"`
	Asymmetric        int       `json:"asymmetric_relationships"`
	StrongMutual      int       `json:"strong_mutual_relationships"`
	SymmetricRate     float64   `json:"symmetric_rate"`
	StrongMutualRate  float64   `json:"strong_mutual_rate"`
	SymmetryValues    []float64 `json:"symmetry_distribution"`
	StrengthValues    []float64 `json:"strength_distribution"`
}

// CoverageComparison compares the trust and PageRank curator paths for one
// user.
type CoverageComparison struct {
	UserID           int64   `json:"user_id"`
	TrustCurators    int     `json:"trust_curators"`
	PageRankCurators int     `json:"pagerank_curators"`
	HasTrustCoverage bool    `json:"has_trust_coverage"`
	NeedsFallback    bool    `json:"needs_fallback"`
	FallbackQuality  float64 `json:"fallback_quality"`
}

// CoverageSummary aggregates coverage comparisons.
type CoverageSummary struct {
	Users             int                  `json:"users"`
	WithTrustCoverage int                  `json:"with_trust_coverage"`
	NeedingFallback   int                  `json:"needing_fallback"`
	Comparisons       []CoverageComparison `json:"comparisons"`
}

// Ranking supplies rankings of the social graph. Implementations usually
// memoize them per analysis run.
type Ranking interface {
	// PageRank returns the PageRank of every social graph node.
	PageRank() map[string]float64

	// Communities returns the community of every social graph node.
	Communities() map[string]int
}

// Snapshot is the read-only graph context recommendations are computed
// from.
type Snapshot struct {
	// Social is the social graph, keyed by user id.
	Social *graph.Graph

	// Trust is the trust graph, keyed by user id.
	Trust *graph.Graph

	// Bipartite is the user-artist graph.
	Bipartite *graph.Graph

	// PostCounts maps user id to authored post count.
	PostCounts map[int64]int

	// Ranking supplies social graph rankings. When nil the Engine computes
	// them on first use.
	Ranking Ranking
}

// displayName returns the display name stored on a user node, or
// "User_<id>".
func displayName(g *graph.Graph, key string, userID int64) string {
	if g != nil {
		if attrs, ok := g.Node(key); ok && attrs.DisplayName != "" {
			return attrs.DisplayName
		}
	}
	return "User_" + strconv.FormatInt(userID, 10)
}
