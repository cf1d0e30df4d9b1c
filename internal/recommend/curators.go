// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"sort"

	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
	"github.com/tomtom215/curatorgraph/internal/trust"
)

// Curators returns the curators of a user together with the path that
// produced them. Users with fewer than Fallback.MinTrustEdges outgoing trust
// edges, or whose trust curators all fall below Curators.MinTrust, are
// served by the PageRank fallback.
func (e *Engine) Curators(s *Snapshot, userID int64) CuratorResult {
	key := socialgraph.UserKey(userID)

	trustEdges := 0
	if s.Trust != nil {
		trustEdges = s.Trust.OutDegree(key)
	}
	if trustEdges < e.config.Fallback.MinTrustEdges {
		return e.fallbackResult(s, userID, ReasonInsufficientTrustEdges)
	}

	curators := e.TrustedCurators(s.Trust, userID, s.PostCounts)
	if len(curators) == 0 {
		return e.fallbackResult(s, userID, ReasonNoTrustedCurators)
	}

	return CuratorResult{
		UserID:   userID,
		Source:   SourceTrust,
		Curators: curators,
	}
}

func (e *Engine) fallbackResult(s *Snapshot, userID int64, reason FallbackReason) CuratorResult {
	curators := e.fallbackCurators(s, userID, e.config.Fallback.MaxCurators, e.config.Fallback.CommunityScoped)

	e.logger.Debug().
		Int64("user_id", userID).
		Str("reason", string(reason)).
		Int("curators", len(curators)).
		Msg("using pagerank fallback curators")

	return CuratorResult{
		UserID:   userID,
		Source:   SourcePageRankFallback,
		Curators: curators,
		Reason:   reason,
	}
}

// TrustedCurators scores every outgoing trust edge of a user with the trust
// formula and returns the curators at or above Curators.MinTrust, strongest
// first, capped at Curators.MaxCurators. A user absent from the trust graph
// has no curators.
func (e *Engine) TrustedCurators(trustGraph *graph.Graph, userID int64, postCounts map[int64]int) []Curator {
	return trustedCurators(trustGraph, userID, postCounts, e.config.Trust, e.config.Curators.MinTrust, e.config.Curators.MaxCurators)
}

func trustedCurators(g *graph.Graph, userID int64, postCounts map[int64]int, params trust.Params, minTrust float64, limit int) []Curator {
	curators := make([]Curator, 0)

	key := socialgraph.UserKey(userID)
	if g == nil || !g.HasNode(key) {
		return curators
	}

	for _, edge := range g.OutEdges(key) {
		targetID, ok := socialgraph.ParseUserKey(edge.To)
		if !ok || targetID == userID {
			continue
		}

		posts := postsOf(postCounts, targetID)
		mutual := g.HasEdge(edge.To, key)
		score := params.Score(trust.NewInput(edge.Weight, posts, mutual))
		if score < minTrust {
			continue
		}

		curators = append(curators, Curator{
			UserID:               targetID,
			DisplayName:          displayName(g, edge.To, targetID),
			TrustScore:           score,
			WeightedInteractions: edge.Weight,
			RawWeight:            edge.Weight,
			TotalPosts:           posts,
			IsMutual:             mutual,
			Source:               SourceTrust,
		})
	}

	sort.SliceStable(curators, func(i, j int) bool {
		return curators[i].TrustScore > curators[j].TrustScore
	})
	if len(curators) > limit {
		curators = curators[:limit]
	}
	return curators
}

// postsOf returns the post count of a user, or 1 when it is unknown.
func postsOf(postCounts map[int64]int, userID int64) int {
	if posts, ok := postCounts[userID]; ok {
		return posts
	}
	return 1
}

// PageRankFallbackCurators ranks the other users of the social graph by
// PageRank, restricted to the user's community when Fallback.CommunityScoped
// is set and the user has one.
func (e *Engine) PageRankFallbackCurators(s *Snapshot, userID int64) []Curator {
	return e.fallbackCurators(s, userID, e.config.Fallback.MaxCurators, e.config.Fallback.CommunityScoped)
}

// fallbackCurators widens a community-scoped search to the whole graph
// when the community holds no other user.
func (e *Engine) fallbackCurators(s *Snapshot, userID int64, limit int, scoped bool) []Curator {
	if s.Social == nil || s.Social.NodeCount() == 0 {
		return []Curator{}
	}

	r := e.ranking(s)
	pagerank := r.PageRank()
	if len(pagerank) == 0 {
		return []Curator{}
	}

	if scoped {
		curators := FallbackCurators(s.Social, pagerank, r.Communities(), userID, limit)
		if len(curators) > 0 {
			return curators
		}
	}
	return FallbackCurators(s.Social, pagerank, nil, userID, limit)
}

// FallbackCurators ranks every other user of social by pagerank, strongest
// first, capped at limit. When communities assigns the user a community,
// only members of that community are considered and the curators are
// scoped ScopeCommunity; otherwise they are scoped ScopeGlobal.
func FallbackCurators(social *graph.Graph, pagerank map[string]float64, communities map[string]int, userID int64, limit int) []Curator {
	curators := make([]Curator, 0)

	self := socialgraph.UserKey(userID)
	target, scoped := communities[self]
	scope := ScopeGlobal
	if scoped {
		scope = ScopeCommunity
	}

	for _, key := range social.Nodes() {
		if key == self {
			continue
		}
		score, ok := pagerank[key]
		if !ok {
			continue
		}
		if scoped {
			if c, ok := communities[key]; !ok || c != target {
				continue
			}
		}
		id, ok := socialgraph.ParseUserKey(key)
		if !ok {
			continue
		}

		curators = append(curators, Curator{
			UserID:        id,
			DisplayName:   displayName(social, key, id),
			PageRankScore: score,
			Source:        SourcePageRankFallback,
			Scope:         scope,
		})
	}

	sort.SliceStable(curators, func(i, j int) bool {
		return curators[i].PageRankScore > curators[j].PageRankScore
	})
	if limit > 0 && len(curators) > limit {
		curators = curators[:limit]
	}
	return curators
}
