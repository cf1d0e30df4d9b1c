// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/tomtom215/curatorgraph/internal/models"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
)

type wantRec struct {
	artist   string
	score    float64
	count    int
	curators []int64
}

func checkRecs(t *testing.T, got []Recommendation, want []wantRec, typ RecommendationType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i, w := range want {
		r := got[i]
		if r.ArtistName != w.artist {
			t.Errorf("recs[%d].ArtistName = %q, want %q", i, r.ArtistName, w.artist)
			continue
		}
		if math.Abs(r.Score-w.score) > 1e-9 {
			t.Errorf("%s Score = %v, want %v", w.artist, r.Score, w.score)
		}
		if r.CuratorCount != w.count {
			t.Errorf("%s CuratorCount = %d, want %d", w.artist, r.CuratorCount, w.count)
		}
		if len(r.TopCurators) != len(w.curators) {
			t.Errorf("%s len(TopCurators) = %d, want %d", w.artist, len(r.TopCurators), len(w.curators))
			continue
		}
		for j, id := range w.curators {
			if r.TopCurators[j].UserID != id {
				t.Errorf("%s TopCurators[%d] = %d, want %d", w.artist, j, r.TopCurators[j].UserID, id)
			}
		}
		if r.Type != typ {
			t.Errorf("%s Type = %q, want %q", w.artist, r.Type, typ)
		}
	}
}

func TestTrustRecommendations_Scenario(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	got := newTestEngine(t, nil).TrustRecommendations(s.Trust, s.Bipartite, 1, s.PostCounts)

	bob := 0.2 * 1.2 * 1.2
	carol := 0.05 * 1.2
	checkRecs(t, got, []wantRec{
		{"Aphex Twin", bob + carol, 2, []int64{2, 3}},
		{"Boards of Canada", bob, 1, []int64{2}},
	}, TypeTrust)

	aphex := got[0].TopCurators[0]
	if aphex.DisplayName != "bob" || aphex.Affinity != 1 || math.Abs(aphex.TrustScore-bob) > 1e-9 {
		t.Errorf("attribution = %+v", aphex)
	}
}

func TestTrustRecommendations_Limits(t *testing.T) {
	t.Parallel()

	users := []models.UserNode{{NodeID: 1}}
	var edges []models.InteractionEdge
	var music []models.MusicRecord
	for c := int64(2); c <= 6; c++ {
		users = append(users, models.UserNode{NodeID: c})
		for i := int64(0); i < c; i++ {
			edges = append(edges, liked(1, c))
		}
		for a := 0; a < 3; a++ {
			music = append(music, models.MusicRecord{
				UserID:     c,
				ArtistName: fmt.Sprintf("artist-%d-%d", c, a),
				CastID:     fmt.Sprintf("cast-%d-%d", c, a),
			})
		}
		music = append(music, models.MusicRecord{UserID: c, ArtistName: "shared", CastID: fmt.Sprintf("shared-%d", c)})
	}

	e := newTestEngine(t, func(c *Config) { c.Recommendations.MaxRecommendations = 4 })
	got := e.TrustRecommendations(
		socialgraph.BuildTrustGraph(edges, users),
		socialgraph.BuildUserArtistGraph(music, nil),
		1, nil,
	)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].ArtistName != "shared" {
		t.Fatalf("top = %q, want shared", got[0].ArtistName)
	}
	if got[0].CuratorCount != 5 {
		t.Errorf("CuratorCount = %d, want 5", got[0].CuratorCount)
	}
	if len(got[0].TopCurators) != 3 {
		t.Fatalf("len(TopCurators) = %d, want 3", len(got[0].TopCurators))
	}
	for i := 1; i < len(got[0].TopCurators); i++ {
		if got[0].TopCurators[i].TrustScore > got[0].TopCurators[i-1].TrustScore {
			t.Errorf("TopCurators not sorted by trust: %+v", got[0].TopCurators)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("recommendations not sorted: %v > %v", got[i].Score, got[i-1].Score)
		}
	}
}

func TestTrustRecommendations_NoCurators(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	got := newTestEngine(t, nil).TrustRecommendations(s.Trust, s.Bipartite, 4, s.PostCounts)
	if got == nil || len(got) != 0 {
		t.Errorf("TrustRecommendations() = %v, want empty slice", got)
	}
}

func TestPageRankRecommendations(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	s.Ranking = fixedRanking{pagerank: map[string]float64{"1": 0.1, "2": 0.5, "3": 0.4}}

	got := newTestEngine(t, nil).PageRankRecommendations(s, 1)
	checkRecs(t, got, []wantRec{
		{"Aphex Twin", 900, 2, []int64{2, 3}},
		{"Boards of Canada", 500, 1, []int64{2}},
	}, TypePageRank)

	if got[0].TopCurators[0].PageRank != 0.5 {
		t.Errorf("PageRank attribution = %v, want 0.5", got[0].TopCurators[0].PageRank)
	}
}

func TestPageRankRecommendations_TopCurators(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	s.Ranking = fixedRanking{pagerank: map[string]float64{"1": 0.1, "2": 0.5, "3": 0.4}}

	got := newTestEngine(t, func(c *Config) { c.PageRank.TopCurators = 1 }).PageRankRecommendations(s, 1)
	checkRecs(t, got, []wantRec{
		{"Boards of Canada", 500, 1, []int64{2}},
		{"Aphex Twin", 500, 1, []int64{2}},
	}, TypePageRank)
}

func TestColdStartRecommendations(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	got := newTestEngine(t, nil).ColdStartRecommendations(s, 4)

	checkRecs(t, got, []wantRec{
		{"Burial", 600, 2, []int64{1, 3}},
		{"Aphex Twin", 500, 2, []int64{2, 3}},
		{"Boards of Canada", 300, 1, []int64{2}},
	}, TypePageRankFallback)
}

func TestColdStartRecommendations_Limits(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	e := newTestEngine(t, func(c *Config) {
		c.ColdStart.SourceCurators = 1
		c.ColdStart.ArtistsPerCurator = 1
	})

	got := e.ColdStartRecommendations(s, 4)
	checkRecs(t, got, []wantRec{{"Burial", 400, 1, []int64{1}}}, TypePageRankFallback)
}

func TestRecommendations_FollowsCuratorPath(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	e := newTestEngine(t, nil)

	trusted := e.Recommendations(s, 1)
	if trusted.Source != SourceTrust {
		t.Errorf("user 1 Source = %q, want %q", trusted.Source, SourceTrust)
	}
	for _, r := range trusted.Recommendations {
		if r.Type != TypeTrust {
			t.Errorf("user 1 recommendation type = %q", r.Type)
		}
	}

	cold := e.Recommendations(s, 4)
	if cold.Source != SourcePageRankFallback {
		t.Errorf("user 4 Source = %q, want %q", cold.Source, SourcePageRankFallback)
	}
	if len(cold.Recommendations) == 0 {
		t.Fatal("cold start user got no recommendations")
	}
	for _, r := range cold.Recommendations {
		if r.Type != TypePageRankFallback {
			t.Errorf("user 4 recommendation type = %q", r.Type)
		}
	}
}

// TestRecommendations_Properties checks on random networks that
// recommendations never include known artists and always credit a curator.
func TestRecommendations_Properties(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	artists := []string{"a", "b", "c", "d", "e", "f"}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(t, "users")
		users := make([]models.UserNode, n)
		for i := range users {
			users[i] = models.UserNode{NodeID: int64(i + 1)}
		}

		var edges []models.InteractionEdge
		for i := rapid.IntRange(0, 30).Draw(t, "edges"); i > 0; i-- {
			edges = append(edges, models.InteractionEdge{
				SourceUserID: int64(rapid.IntRange(1, n).Draw(t, "source")),
				TargetUserID: int64(rapid.IntRange(1, n).Draw(t, "target")),
				EdgeType:     rapid.SampledFrom(models.EngagementEdgeTypes).Draw(t, "type"),
			})
		}

		var music []models.MusicRecord
		for i := rapid.IntRange(0, 25).Draw(t, "records"); i > 0; i-- {
			music = append(music, models.MusicRecord{
				UserID:     int64(rapid.IntRange(1, n).Draw(t, "owner")),
				ArtistName: rapid.SampledFrom(artists).Draw(t, "artist"),
				CastID:     fmt.Sprintf("cast-%d", i),
			})
		}

		posts := make(map[int64]int, n)
		for _, u := range users {
			posts[u.NodeID] = rapid.IntRange(0, 5).Draw(t, "posts")
		}

		s := &Snapshot{
			Social:     socialgraph.BuildSocialGraph(edges, users),
			Trust:      socialgraph.BuildTrustGraph(edges, users),
			Bipartite:  socialgraph.BuildUserArtistGraph(music, edges),
			PostCounts: posts,
		}
		userID := int64(rapid.IntRange(1, n).Draw(t, "user"))
		known := socialgraph.ArtistAffinities(s.Bipartite, userID)

		result := e.Recommendations(s, userID)
		for _, r := range result.Recommendations {
			if _, ok := known[r.ArtistName]; ok {
				t.Fatalf("recommended known artist %q to user %d", r.ArtistName, userID)
			}
			if r.CuratorCount < 1 || len(r.TopCurators) == 0 {
				t.Fatalf("recommendation %q has no curators", r.ArtistName)
			}
			if r.Score <= 0 {
				t.Fatalf("recommendation %q has score %v", r.ArtistName, r.Score)
			}
			for _, c := range r.TopCurators {
				if c.UserID == userID {
					t.Fatalf("user %d credited for their own recommendation", userID)
				}
			}
		}

		curators := e.Curators(s, userID)
		if s.Trust.OutDegree(socialgraph.UserKey(userID)) == 0 && curators.Source != SourcePageRankFallback {
			t.Fatalf("user %d without trust edges got source %q", userID, curators.Source)
		}
	})
}
