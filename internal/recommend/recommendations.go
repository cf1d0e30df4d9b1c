// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"sort"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
)

// Recommendations returns artist recommendations for a user through the
// curator path chosen by Curators: trust recommendations when the user has
// trusted curators and cold-start recommendations otherwise.
func (e *Engine) Recommendations(s *Snapshot, userID int64) RecommendationResult {
	curators := e.Curators(s, userID)

	var recs []Recommendation
	if curators.Source == SourceTrust {
		recs = e.fromTrustCurators(curators.Curators, s.Bipartite, userID)
	} else {
		recs = e.fromFallbackCurators(curators.Curators, s.Bipartite, userID)
	}

	return RecommendationResult{
		UserID:          userID,
		Source:          curators.Source,
		Recommendations: recs,
	}
}

// TrustRecommendations recommends artists favored by the user's trusted
// curators. Each artist scores the sum of trust × affinity over the
// curators that know it; artists the user already knows are excluded.
func (e *Engine) TrustRecommendations(trustGraph, bipartite *graph.Graph, userID int64, postCounts map[int64]int) []Recommendation {
	curators := e.TrustedCurators(trustGraph, userID, postCounts)
	if len(curators) == 0 {
		e.logger.Debug().Int64("user_id", userID).Msg("no trusted curators")
		return []Recommendation{}
	}
	return e.fromTrustCurators(curators, bipartite, userID)
}

func (e *Engine) fromTrustCurators(curators []Curator, bipartite *graph.Graph, userID int64) []Recommendation {
	if bipartite == nil {
		return []Recommendation{}
	}

	agg := newAggregator(socialgraph.ArtistAffinities(bipartite, userID))
	for i := range curators {
		c := &curators[i]
		for _, a := range socialgraph.ArtistAffinityList(bipartite, c.UserID) {
			agg.add(a.ArtistName, c.TrustScore*a.Affinity, Attribution{
				UserID:      c.UserID,
				DisplayName: c.DisplayName,
				TrustScore:  c.TrustScore,
				Affinity:    a.Affinity,
			})
		}
	}

	return agg.results(TypeTrust, e.config.Recommendations.CuratorsPerArtist, e.config.Recommendations.MaxRecommendations,
		func(a, b Attribution) bool { return a.TrustScore > b.TrustScore })
}

// PageRankRecommendations recommends artists favored by the highest-ranked
// users of the social graph. Each artist scores the sum of
// pagerank × affinity × PageRank.ScoreScale over those users.
func (e *Engine) PageRankRecommendations(s *Snapshot, userID int64) []Recommendation {
	if s.Social == nil || s.Bipartite == nil {
		return []Recommendation{}
	}

	pagerank := e.ranking(s).PageRank()
	if len(pagerank) == 0 {
		return []Recommendation{}
	}

	self := socialgraph.UserKey(userID)
	agg := newAggregator(socialgraph.ArtistAffinities(s.Bipartite, userID))

	consulted := 0
	for _, ranked := range centrality.Top(pagerank, 0) {
		if consulted == e.config.PageRank.TopCurators {
			break
		}
		if ranked.Key == self {
			continue
		}
		id, ok := socialgraph.ParseUserKey(ranked.Key)
		if !ok {
			continue
		}
		consulted++

		name := displayName(s.Social, ranked.Key, id)
		for _, a := range socialgraph.ArtistAffinityList(s.Bipartite, id) {
			agg.add(a.ArtistName, ranked.Score*a.Affinity*e.config.PageRank.ScoreScale, Attribution{
				UserID:      id,
				DisplayName: name,
				PageRank:    ranked.Score,
				Affinity:    a.Affinity,
			})
		}
	}

	return agg.results(TypePageRank, e.config.PageRank.CuratorsPerArtist, e.config.PageRank.MaxRecommendations, byPageRank)
}

// ColdStartRecommendations recommends the top artists of the user's best
// PageRank fallback curators. Only the first ColdStart.SourceCurators of
// ColdStart.MaxCurators fallback curators contribute, with up to
// ColdStart.ArtistsPerCurator artists each.
func (e *Engine) ColdStartRecommendations(s *Snapshot, userID int64) []Recommendation {
	curators := e.fallbackCurators(s, userID, e.config.ColdStart.MaxCurators, e.config.Fallback.CommunityScoped)
	return e.fromFallbackCurators(curators, s.Bipartite, userID)
}

func (e *Engine) fromFallbackCurators(curators []Curator, bipartite *graph.Graph, userID int64) []Recommendation {
	if bipartite == nil || len(curators) == 0 {
		return []Recommendation{}
	}

	cfg := e.config.ColdStart
	if len(curators) > cfg.SourceCurators {
		curators = curators[:cfg.SourceCurators]
	}

	known := socialgraph.ArtistAffinities(bipartite, userID)
	agg := newAggregator(known)
	for i := range curators {
		c := &curators[i]
		taken := 0
		for _, a := range socialgraph.ArtistAffinityList(bipartite, c.UserID) {
			if taken == cfg.ArtistsPerCurator {
				break
			}
			if _, ok := known[a.ArtistName]; ok {
				continue
			}
			taken++
			agg.add(a.ArtistName, c.PageRankScore*a.Affinity*e.config.PageRank.ScoreScale, Attribution{
				UserID:      c.UserID,
				DisplayName: c.DisplayName,
				PageRank:    c.PageRankScore,
				Affinity:    a.Affinity,
			})
		}
	}

	return agg.results(TypePageRankFallback, cfg.SourceCurators, cfg.SourceCurators*cfg.ArtistsPerCurator, byPageRank)
}

func byPageRank(a, b Attribution) bool {
	return a.PageRank > b.PageRank
}

// artistScore accumulates the support for one artist.
type artistScore struct {
	name     string
	score    float64
	curators []Attribution
}

// aggregator sums curator support per artist, in first-seen order,
// skipping artists the user already knows.
type aggregator struct {
	known  map[string]float64
	order  []*artistScore
	byName map[string]*artistScore
}

func newAggregator(known map[string]float64) *aggregator {
	return &aggregator{
		known:  known,
		byName: make(map[string]*artistScore),
	}
}

//nolint:gocritic // Attribution passed by value for immutability
func (a *aggregator) add(artist string, score float64, credit Attribution) {
	if _, ok := a.known[artist]; ok {
		return
	}
	s, ok := a.byName[artist]
	if !ok {
		s = &artistScore{name: artist}
		a.byName[artist] = s
		a.order = append(a.order, s)
	}
	s.score += score
	s.curators = append(s.curators, credit)
}

// results returns the artists with a positive score, highest first, capped
// at limit. Each carries its top perArtist curators under less.
func (a *aggregator) results(typ RecommendationType, perArtist, limit int, less func(a, b Attribution) bool) []Recommendation {
	recs := make([]Recommendation, 0, len(a.order))
	for _, s := range a.order {
		if s.score <= 0 {
			continue
		}

		top := append([]Attribution(nil), s.curators...)
		sort.SliceStable(top, func(i, j int) bool { return less(top[i], top[j]) })
		if len(top) > perArtist {
			top = top[:perArtist]
		}

		recs = append(recs, Recommendation{
			ArtistName:   s.name,
			Score:        s.score,
			CuratorCount: len(s.curators),
			TopCurators:  top,
			Type:         typ,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
