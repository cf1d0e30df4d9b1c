// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/models"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()

	src := newScenarioSource()
	var posts, engagements []models.InteractionEdge
	for _, e := range src.edges {
		if e.EdgeType == models.EdgeTypeAuthored {
			posts = append(posts, e)
		} else {
			engagements = append(engagements, e)
		}
	}
	in := &Input{
		Users:       src.users,
		Edges:       src.edges,
		Posts:       posts,
		Engagements: engagements,
		Music:       src.music,
		PostCounts:  src.counts,
	}
	ranker := centrality.New(centrality.DefaultOptions(), zerolog.Nop())
	return NewSession(in, ranker, centrality.AlgorithmLouvain, zerolog.Nop())
}

func TestSession_Graphs(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	for _, name := range GraphNames {
		g, ok := s.Graph(name)
		if !ok || g == nil {
			t.Errorf("Graph(%q) missing", name)
		}
	}
	if _, ok := s.Graph("unknown"); ok {
		t.Error("Graph(unknown) ok = true, want false")
	}

	social, _ := s.Graph(GraphSocial)
	if social.NodeCount() != 4 {
		t.Errorf("social nodes = %d, want 4", social.NodeCount())
	}
	userArtist, _ := s.Graph(GraphUserArtist)
	if userArtist.Directed() {
		t.Error("user-artist graph is directed, want undirected")
	}
}

func TestSession_Summaries(t *testing.T) {
	t.Parallel()

	summaries := newTestSession(t).Summaries()
	if len(summaries) != len(GraphNames) {
		t.Fatalf("len(Summaries) = %d, want %d", len(summaries), len(GraphNames))
	}
	for i, s := range summaries {
		if s.Name != GraphNames[i] {
			t.Errorf("Summaries[%d].Name = %q, want %q", i, s.Name, GraphNames[i])
		}
	}
}

func TestSession_PageRankMemoized(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	first := s.PageRankOf(GraphSocial)
	second := s.PageRank()
	if reflect.ValueOf(first).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Error("PageRank recomputed, want memoized map")
	}

	var sum float64
	for _, v := range first {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum(pagerank) = %v, want 1", sum)
	}
	if s.RankingFailed(GraphSocial) {
		t.Error("RankingFailed(social) = true, want false")
	}
	if got := s.PageRankOf("unknown"); got != nil {
		t.Errorf("PageRankOf(unknown) = %v, want nil", got)
	}
}

func TestSession_Communities(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	communities := s.Communities()
	if len(communities) != 4 {
		t.Errorf("len(Communities) = %d, want 4", len(communities))
	}
	if _, ok := s.PartitionOf("unknown"); ok {
		t.Error("PartitionOf(unknown) ok = true, want false")
	}

	p1, ok1 := s.PartitionOf(GraphSocial)
	p2, ok2 := s.PartitionOf(GraphSocial)
	if ok1 != ok2 || !reflect.DeepEqual(p1, p2) {
		t.Error("PartitionOf not memoized")
	}
}

func TestSession_Snapshot(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	snap := s.Snapshot()
	if snap.Ranking != s {
		t.Error("Snapshot.Ranking is not the session")
	}
	social, _ := s.Graph(GraphSocial)
	if snap.Social != social {
		t.Error("Snapshot.Social is not the session social graph")
	}
	if snap.PostCounts[3] != 20 {
		t.Errorf("PostCounts[3] = %d, want 20", snap.PostCounts[3])
	}
}

func TestSession_NilPostCounts(t *testing.T) {
	t.Parallel()

	ranker := centrality.New(centrality.DefaultOptions(), zerolog.Nop())
	s := NewSession(&Input{}, ranker, centrality.AlgorithmLouvain, zerolog.Nop())
	if s.PostCounts() == nil {
		t.Error("PostCounts() = nil, want empty map")
	}
	if got := len(s.Communities()); got != 0 {
		t.Errorf("len(Communities) = %d, want 0", got)
	}
	authority, ok := s.Graph(GraphArtistAuthority)
	if !ok || authority.NodeCount() != 0 {
		t.Error("artist authority graph of empty input is not empty")
	}
}

func TestSession_Concurrent(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	var wg sync.WaitGroup
	results := make([]map[string]float64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Communities()
			_, _ = s.Graph(GraphArtistAuthority)
			results[i] = s.PageRank()
		}()
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if reflect.ValueOf(results[i]).Pointer() != reflect.ValueOf(results[0]).Pointer() {
			t.Fatalf("results[%d] differs from results[0]", i)
		}
	}
}
