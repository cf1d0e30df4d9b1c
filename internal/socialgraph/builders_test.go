// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"math"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/models"
)

const epsilon = 1e-9

func users(ids ...int64) []models.UserNode {
	out := make([]models.UserNode, len(ids))
	for i, id := range ids {
		out[i] = models.UserNode{NodeID: id, DisplayName: "user" + UserKey(id)}
	}
	return out
}

func edge(from, to int64, t models.EdgeType) models.InteractionEdge {
	return models.InteractionEdge{SourceUserID: from, TargetUserID: to, EdgeType: t}
}

func castEdge(from int64, t models.EdgeType, castID string) models.InteractionEdge {
	return models.InteractionEdge{SourceUserID: from, TargetUserID: from, EdgeType: t, CastID: castID}
}

func weightOf(t *testing.T, g *graph.Graph, from, to string) float64 {
	t.Helper()
	e, ok := g.Edge(from, to)
	if !ok {
		t.Fatalf("missing edge %s->%s", from, to)
	}
	return e.Weight
}

func TestWeightTable_UnknownTypeIsZero(t *testing.T) {
	t.Parallel()

	tables := map[string]WeightTable{
		"social":     SocialWeights(),
		"trust":      TrustWeights(),
		"engagement": EngagementWeights(),
	}
	for name, table := range tables {
		if got := table.Weight(models.EdgeTypeUnknown); got != 0 {
			t.Errorf("%s.Weight(UNKNOWN) = %v, want 0", name, got)
		}
	}
	if got := TrustWeights().Weight(models.EdgeTypeAuthored); got != 0 {
		t.Errorf("trust.Weight(AUTHORED) = %v, want 0", got)
	}
	if TrustWeights().Has(models.EdgeTypeAuthored) {
		t.Error("trust table should not contain AUTHORED")
	}
}

func TestBuildSocialGraph(t *testing.T) {
	t.Parallel()

	edges := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeLiked),
		edge(1, 2, models.EdgeTypeRecasted),
		edge(1, 2, models.EdgeTypeReplied),
		edge(2, 1, models.EdgeTypeAuthored),
		edge(3, 3, models.EdgeTypeAuthored),
		edge(2, 3, models.EdgeTypeUnknown),
	}
	g := BuildSocialGraph(edges, users(1, 2, 3, 4))

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if got := weightOf(t, g, "1", "2"); got != 6.0 {
		t.Errorf("weight 1->2 = %v, want 6", got)
	}
	if got := weightOf(t, g, "2", "1"); got != 10.0 {
		t.Errorf("weight 2->1 = %v, want 10", got)
	}
	if g.HasEdge("3", "3") {
		t.Error("self-loop materialized")
	}
	if g.HasEdge("2", "3") {
		t.Error("zero-weight edge materialized")
	}
	if e, _ := g.Edge("1", "2"); e.Type != "RECASTED" {
		t.Errorf("dominant type = %q, want RECASTED", e.Type)
	}
	attrs, _ := g.Node("4")
	if attrs.DisplayName != "user4" {
		t.Errorf("isolated node metadata = %+v", attrs)
	}
}

func TestBuildTrustGraph_Scenario(t *testing.T) {
	t.Parallel()

	edges := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeLiked),
		edge(2, 1, models.EdgeTypeLiked),
		edge(1, 3, models.EdgeTypeLiked),
		edge(3, 1, models.EdgeTypeAuthored),
	}
	g := BuildTrustGraph(edges, users(1, 2, 3))

	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	for _, p := range [][2]string{{"1", "2"}, {"2", "1"}, {"1", "3"}} {
		if got := weightOf(t, g, p[0], p[1]); got != 1.0 {
			t.Errorf("weight %s->%s = %v, want 1", p[0], p[1], got)
		}
	}
	if g.HasEdge("3", "1") {
		t.Error("AUTHORED edge in trust graph")
	}
}

func TestBuildTrustGraph_Weights(t *testing.T) {
	t.Parallel()

	edges := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeReplied),
		edge(1, 2, models.EdgeTypeReplied),
		edge(1, 2, models.EdgeTypeRecasted),
	}
	g := BuildTrustGraph(edges, users(1, 2))
	if got := weightOf(t, g, "1", "2"); got != 3.0 {
		t.Errorf("weight = %v, want 3", got)
	}
}

func TestBuildEngagementGraph(t *testing.T) {
	t.Parallel()

	edges := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeLiked),
		edge(1, 2, models.EdgeTypeReplied),
		edge(3, 2, models.EdgeTypeRecasted),
		edge(2, 1, models.EdgeTypeAuthored),
		edge(2, 3, models.EdgeTypeUnknown),
	}
	g := BuildEngagementGraph(edges, users(1, 2, 3))

	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if got := weightOf(t, g, "1", "2"); got != 3.0 {
		t.Errorf("weight 1->2 = %v, want 3", got)
	}
	if got := weightOf(t, g, "3", "2"); got != 3.0 {
		t.Errorf("weight 3->2 = %v, want 3", got)
	}
}

func TestPostPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		posts int
		want  float64
	}{
		{0, 1.0},
		{1, 1.0},
		{10, 1.0},
		{100, 0.5},
		{1000, 1.0 / 3.0},
	}
	for _, tt := range tests {
		if got := PostPenalty(tt.posts); math.Abs(got-tt.want) > epsilon {
			t.Errorf("PostPenalty(%d) = %v, want %v", tt.posts, got, tt.want)
		}
	}
}

func TestEngagementBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		rate, maxRate float64
		want          float64
	}{
		{"no engagement anywhere", 0, 0, 1.0},
		{"top of network", 2, 2, 1.5},
		{"half of max", 1, 2, 1.25},
		{"no engagement", 0, 2, 1.0},
	}
	for _, tt := range tests {
		if got := EngagementBonus(tt.rate, tt.maxRate); math.Abs(got-tt.want) > epsilon {
			t.Errorf("%s: EngagementBonus(%v, %v) = %v, want %v", tt.name, tt.rate, tt.maxRate, got, tt.want)
		}
	}
}

func TestBuildQualityAdjustedGraph(t *testing.T) {
	t.Parallel()

	edges := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeLiked),
		edge(3, 2, models.EdgeTypeRecasted),
		edge(1, 3, models.EdgeTypeReplied),
		edge(2, 2, models.EdgeTypeAuthored),
	}
	counts := map[int64]int{2: 100, 3: 5}
	g := BuildQualityAdjustedGraph(edges, users(1, 2, 3), counts)

	tests := []struct {
		from, to string
		want     float64
	}{
		{"1", "2", 1 * 0.5 * 1.05},
		{"3", "2", 3 * 0.5 * 1.05},
		{"1", "3", 2 * 1.0 * 1.5},
	}
	for _, tt := range tests {
		if got := weightOf(t, g, tt.from, tt.to); math.Abs(got-tt.want) > epsilon {
			t.Errorf("weight %s->%s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if attrs, _ := g.Node("1"); attrs.PostCount != 1 {
		t.Errorf("default post_count = %d, want 1", attrs.PostCount)
	}
	if attrs, _ := g.Node("2"); attrs.PostCount != 100 {
		t.Errorf("post_count = %d, want 100", attrs.PostCount)
	}
	if g.HasEdge("2", "2") {
		t.Error("self-loop materialized")
	}
}

func TestBuildEngagementIntensityGraph(t *testing.T) {
	t.Parallel()

	posts := []models.InteractionEdge{
		castEdge(2, models.EdgeTypeAuthored, "p1"),
		castEdge(2, models.EdgeTypeAuthored, "p2"),
		castEdge(3, models.EdgeTypeAuthored, "p3"),
	}
	engagements := []models.InteractionEdge{
		edge(1, 2, models.EdgeTypeLiked),
		edge(1, 2, models.EdgeTypeRecasted),
		edge(1, 3, models.EdgeTypeReplied),
		edge(3, 2, models.EdgeTypeLiked),
		edge(2, 4, models.EdgeTypeLiked),
		edge(3, 3, models.EdgeTypeLiked),
	}
	g := BuildEngagementIntensityGraph(posts, engagements, users(1, 2, 3, 4))

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", g.EdgeCount())
	}

	tests := []struct {
		from, to string
		want     float64
		typ      string
	}{
		{"1", "2", 0.5 + 1.5, "RECASTED"},
		{"1", "3", 2.0, "REPLIED"},
		{"3", "2", 0.5, "LIKED"},
	}
	for _, tt := range tests {
		e, ok := g.Edge(tt.from, tt.to)
		if !ok {
			t.Errorf("missing edge %s->%s", tt.from, tt.to)
			continue
		}
		if math.Abs(e.Weight-tt.want) > epsilon {
			t.Errorf("weight %s->%s = %v, want %v", tt.from, tt.to, e.Weight, tt.want)
		}
		if e.Type != tt.typ {
			t.Errorf("type %s->%s = %q, want %q", tt.from, tt.to, e.Type, tt.typ)
		}
	}
	if g.HasEdge("2", "4") {
		t.Error("engagement with a creator without posts materialized")
	}
}

func TestBuilders_IsolatedNodes(t *testing.T) {
	t.Parallel()

	u := users(1, 2, 3, 4, 5)
	builders := map[string]*graph.Graph{
		"social":    BuildSocialGraph(nil, u),
		"trust":     BuildTrustGraph(nil, u),
		"quality":   BuildQualityAdjustedGraph(nil, u, nil),
		"engage":    BuildEngagementGraph(nil, u),
		"intensity": BuildEngagementIntensityGraph(nil, nil, u),
	}
	for name, g := range builders {
		if g.NodeCount() != 5 || g.EdgeCount() != 0 {
			t.Errorf("%s: nodes=%d edges=%d, want 5 and 0", name, g.NodeCount(), g.EdgeCount())
		}
	}
}

func genEdges(t *rapid.T) []models.InteractionEdge {
	types := []models.EdgeType{
		models.EdgeTypeAuthored, models.EdgeTypeLiked, models.EdgeTypeRecasted,
		models.EdgeTypeReplied, models.EdgeTypeUnknown,
	}
	n := rapid.IntRange(0, 60).Draw(t, "n")
	out := make([]models.InteractionEdge, n)
	for i := range out {
		out[i] = models.InteractionEdge{
			SourceUserID: rapid.Int64Range(1, 6).Draw(t, "src"),
			TargetUserID: rapid.Int64Range(1, 6).Draw(t, "dst"),
			EdgeType:     rapid.SampledFrom(types).Draw(t, "type"),
		}
	}
	return out
}

func TestBuilders_NoSelfLoopsProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		edges := genEdges(t)
		u := users(1, 2, 3, 4, 5, 6)
		counts := map[int64]int{1: 3, 2: 40, 3: 0}

		for _, g := range []*graph.Graph{
			BuildSocialGraph(edges, u),
			BuildTrustGraph(edges, u),
			BuildQualityAdjustedGraph(edges, u, counts),
			BuildEngagementGraph(edges, u),
			BuildEngagementIntensityGraph(edges, edges, u),
		} {
			for _, e := range g.Edges() {
				if e.From == e.To {
					t.Fatalf("self-loop %s->%s", e.From, e.To)
				}
				if e.Weight <= 0 {
					t.Fatalf("non-positive edge %s->%s weight %v", e.From, e.To, e.Weight)
				}
			}
		}
	})
}

func TestBuildSocialGraph_AccumulationProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		edges := genEdges(t)
		g := BuildSocialGraph(edges, nil)

		want := make(map[[2]int64]float64)
		for _, e := range edges {
			if e.SourceUserID != e.TargetUserID {
				want[[2]int64{e.SourceUserID, e.TargetUserID}] += SocialWeights().Weight(e.EdgeType)
			}
		}
		for pair, w := range want {
			e, ok := g.Edge(UserKey(pair[0]), UserKey(pair[1]))
			if w <= 0 {
				if ok {
					t.Fatalf("zero-weight pair %v materialized", pair)
				}
				continue
			}
			if !ok || e.Weight != w {
				t.Fatalf("pair %v weight = %v, want %v", pair, e.Weight, w)
			}
		}
	})
}

func TestBuilders_DeterministicProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		edges := genEdges(t)
		u := users(1, 2, 3, 4, 5, 6)
		counts := map[int64]int{1: 3, 2: 40}

		a := BuildQualityAdjustedGraph(edges, u, counts)
		b := BuildQualityAdjustedGraph(edges, u, counts)
		if !reflect.DeepEqual(a.Nodes(), b.Nodes()) {
			t.Fatal("node sets differ between rebuilds")
		}
		if !reflect.DeepEqual(a.Edges(), b.Edges()) {
			t.Fatal("edges differ between rebuilds")
		}
	})
}
