// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/models"
	"github.com/tomtom215/curatorgraph/internal/recommend"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
)

// Graph names used in reports and lookups.
const (
	GraphSocial              = "social"
	GraphTrust               = "trust"
	GraphEngagement          = "engagement"
	GraphQualityAdjusted     = "quality_adjusted"
	GraphEngagementIntensity = "engagement_intensity"
	GraphUserArtist          = "user_artist"
	GraphArtistAuthority     = "artist_authority"
)

// GraphNames lists every graph of a session in build order.
var GraphNames = []string{
	GraphSocial,
	GraphTrust,
	GraphEngagement,
	GraphQualityAdjusted,
	GraphEngagementIntensity,
	GraphUserArtist,
	GraphArtistAuthority,
}

// Input is the raw data of one run.
type Input struct {
	Users []models.UserNode

	// Edges are the interactions of every type inside the run window.
	Edges []models.InteractionEdge

	// Posts are the AUTHORED edges inside the run window and Engagements
	// the interactions on those posts.
	Posts       []models.InteractionEdge
	Engagements []models.InteractionEdge

	Music      []models.MusicRecord
	PostCounts map[int64]int
}

// Session holds the graphs of one run and memoizes their rankings. It
// implements recommend.Ranking for the social graph. Maps returned by a
// Session are shared and must not be modified.
type Session struct {
	ranker     *centrality.Engine
	algorithm  centrality.Algorithm
	postCounts map[int64]int
	graphs     map[string]*graph.Graph
	logger     zerolog.Logger

	mu         sync.Mutex
	authority  *graph.Graph
	pagerank   map[string]map[string]float64
	rankFailed map[string]bool
	partitions map[string]partition
}

type partition struct {
	p  centrality.Partition
	ok bool
}

var _ recommend.Ranking = (*Session)(nil)

// NewSession builds every graph of in. The artist authority graph depends
// on social PageRank and is built on first use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSession(in *Input, ranker *centrality.Engine, algorithm centrality.Algorithm, logger zerolog.Logger) *Session {
	postCounts := in.PostCounts
	if postCounts == nil {
		postCounts = map[int64]int{}
	}

	graphs := map[string]*graph.Graph{
		GraphSocial:              socialgraph.BuildSocialGraph(in.Edges, in.Users),
		GraphTrust:               socialgraph.BuildTrustGraph(in.Edges, in.Users),
		GraphEngagement:          socialgraph.BuildEngagementGraph(in.Edges, in.Users),
		GraphQualityAdjusted:     socialgraph.BuildQualityAdjustedGraph(in.Edges, in.Users, postCounts),
		GraphEngagementIntensity: socialgraph.BuildEngagementIntensityGraph(in.Posts, in.Engagements, in.Users),
		GraphUserArtist:          socialgraph.BuildUserArtistGraph(in.Music, in.Edges),
	}

	return &Session{
		ranker:     ranker,
		algorithm:  algorithm,
		postCounts: postCounts,
		graphs:     graphs,
		logger:     logger.With().Str("component", "session").Logger(),
		pagerank:   make(map[string]map[string]float64),
		rankFailed: make(map[string]bool),
		partitions: make(map[string]partition),
	}
}

// Graph returns the named graph.
func (s *Session) Graph(name string) (*graph.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graphLocked(name)
}

func (s *Session) graphLocked(name string) (*graph.Graph, bool) {
	if name == GraphArtistAuthority {
		if s.authority == nil {
			rank := s.pageRankLocked(GraphSocial)
			if s.rankFailed[GraphSocial] {
				rank = nil
			}
			s.authority = socialgraph.BuildArtistAuthorityGraph(s.graphs[GraphUserArtist], rank)
		}
		return s.authority, true
	}
	g, ok := s.graphs[name]
	return g, ok
}

// Summaries describes every graph in GraphNames order.
func (s *Session) Summaries() []graph.Summary {
	out := make([]graph.Summary, 0, len(GraphNames))
	for _, name := range GraphNames {
		g, _ := s.Graph(name)
		out = append(out, graph.Summarize(name, g))
	}
	return out
}

// PageRankOf returns the PageRank of the named graph, or nil for an
// unknown name.
func (s *Session) PageRankOf(name string) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageRankLocked(name)
}

func (s *Session) pageRankLocked(name string) map[string]float64 {
	if pr, ok := s.pagerank[name]; ok {
		return pr
	}
	g, ok := s.graphLocked(name)
	if !ok {
		return nil
	}
	pr, err := s.ranker.TryPageRank(g)
	if err != nil {
		s.logger.Warn().Err(err).Str("graph", name).Msg("pagerank failed, using uniform distribution")
		s.rankFailed[name] = true
		pr = make(map[string]float64, g.NodeCount())
		for _, k := range g.Nodes() {
			pr[k] = 1.0 / float64(g.NodeCount())
		}
	}
	s.pagerank[name] = pr
	return pr
}

// RankingFailed reports whether PageRank of the named graph degraded to
// the uniform distribution.
func (s *Session) RankingFailed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankFailed[name]
}

// PartitionOf returns the community partition of the named graph. ok is
// false for an unknown name or when detection yields nothing.
func (s *Session) PartitionOf(name string) (centrality.Partition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.partitions[name]; ok {
		return p.p, p.ok
	}
	g, ok := s.graphLocked(name)
	if !ok {
		return centrality.Partition{}, false
	}
	p, ok := s.ranker.Partition(g, s.algorithm)
	s.partitions[name] = partition{p: p, ok: ok}
	return p, ok
}

// PageRank returns the PageRank of the social graph.
func (s *Session) PageRank() map[string]float64 {
	return s.PageRankOf(GraphSocial)
}

// Communities returns the community membership of the social graph.
func (s *Session) Communities() map[string]int {
	p, ok := s.PartitionOf(GraphSocial)
	if !ok || p.Membership == nil {
		return map[string]int{}
	}
	return p.Membership
}

// PostCounts returns the authored post count per user.
func (s *Session) PostCounts() map[int64]int {
	return s.postCounts
}

// Snapshot returns the recommendation view of the session.
func (s *Session) Snapshot() *recommend.Snapshot {
	return &recommend.Snapshot{
		Social:     s.graphs[GraphSocial],
		Trust:      s.graphs[GraphTrust],
		Bipartite:  s.graphs[GraphUserArtist],
		PostCounts: s.postCounts,
		Ranking:    s,
	}
}
