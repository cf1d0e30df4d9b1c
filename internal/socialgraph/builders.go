// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"math"

	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/models"
)

// BuildSocialGraph builds the directed user interaction graph over all
// interaction types using SocialWeights.
func BuildSocialGraph(edges []models.InteractionEdge, users []models.UserNode) *graph.Graph {
	return buildWeighted(edges, users, SocialWeights(), false)
}

// BuildTrustGraph builds the directed trust graph. Only interaction types
// present in TrustWeights contribute.
func BuildTrustGraph(edges []models.InteractionEdge, users []models.UserNode) *graph.Graph {
	return buildWeighted(edges, users, TrustWeights(), true)
}

// BuildEngagementGraph builds the directed engager -> creator graph from
// LIKED, REPLIED and RECASTED interactions using EngagementWeights.
func BuildEngagementGraph(edges []models.InteractionEdge, users []models.UserNode) *graph.Graph {
	return buildWeighted(edges, users, EngagementWeights(), true)
}

// buildWeighted is the common reducer behind the plain weighted builders.
// When onlyListed is set, edge types missing from the table are skipped
// instead of contributing zero.
func buildWeighted(edges []models.InteractionEdge, users []models.UserNode, weights WeightTable, onlyListed bool) *graph.Graph {
	g := graph.NewDirected()
	addUsers(g, users)

	acc := newAccumulator()
	for _, e := range edges {
		if onlyListed && !weights.Has(e.EdgeType) {
			continue
		}
		if e.IsSelfLoop() {
			continue
		}
		acc.add(e.SourceUserID, e.TargetUserID, e.EdgeType, weights.Weight(e.EdgeType))
	}
	acc.materialize(g)
	return g
}

// PostPenalty dampens the weight of interactions with high-volume posters:
// 1/(1+log10(max(1, posts/10))). It is 1 up to ten posts and never zero.
func PostPenalty(posts int) float64 {
	safe := math.Max(1, float64(posts))
	return 1.0 / (1.0 + math.Log10(math.Max(1, safe/10)))
}

// EngagementBonus rewards targets whose engagement rate is high relative to
// the network maximum, between 1.0 and 1.5.
func EngagementBonus(rate, maxRate float64) float64 {
	if maxRate <= 0 {
		return 1.0
	}
	return 1.0 + math.Min(0.5, rate/maxRate*0.5)
}

// BuildQualityAdjustedGraph builds the social graph with every interaction
// weight multiplied by the target's PostPenalty and EngagementBonus.
//
// postCounts holds lifetime post counts. Users missing from it count as one
// post. The engagement rate of a user is the social weight of all non-AUTHORED
// interactions they received divided by their post count.
func BuildQualityAdjustedGraph(edges []models.InteractionEdge, users []models.UserNode, postCounts map[int64]int) *graph.Graph {
	weights := SocialWeights()
	postsOf := func(id int64) int {
		if n, ok := postCounts[id]; ok {
			return n
		}
		return 1
	}

	g := graph.NewDirected()
	for _, u := range users {
		g.AddNode(UserKey(u.NodeID), graph.NodeAttrs{
			DisplayName: u.DisplayName,
			UserID:      u.NodeID,
			PostCount:   postsOf(u.NodeID),
		})
	}

	received := make(map[int64]float64)
	for _, e := range edges {
		if e.EdgeType == models.EdgeTypeAuthored {
			continue
		}
		received[e.TargetUserID] += weights.Weight(e.EdgeType)
	}

	rates := make(map[int64]float64, len(received))
	maxRate := 0.0
	for id, total := range received {
		rate := total / float64(max(1, postsOf(id)))
		rates[id] = rate
		maxRate = math.Max(maxRate, rate)
	}

	acc := newAccumulator()
	for _, e := range edges {
		if e.IsSelfLoop() {
			continue
		}
		base := weights.Weight(e.EdgeType)
		adjusted := base * PostPenalty(postsOf(e.TargetUserID)) * EngagementBonus(rates[e.TargetUserID], maxRate)
		acc.add(e.SourceUserID, e.TargetUserID, e.EdgeType, adjusted)
	}
	acc.materialize(g)
	return g
}

// engagementCounts tallies the interactions of one engager with one creator.
type engagementCounts struct {
	likes, replies, recasts int
}

// BuildEngagementIntensityGraph builds the engager -> creator graph weighted
// by engagement per post in the analysis window:
//
//	likes/posts*1 + replies/posts*2 + recasts/posts*3
//
// posts are the AUTHORED edges of the window, counted on their source user.
// Engagement with creators who have no post in the window is dropped.
func BuildEngagementIntensityGraph(posts, engagements []models.InteractionEdge, users []models.UserNode) *graph.Graph {
	g := graph.NewDirected()
	addUsers(g, users)

	windowPosts := make(map[int64]int)
	for _, p := range posts {
		windowPosts[p.SourceUserID]++
	}

	var engagers []int64
	creatorOrder := make(map[int64][]int64)
	totals := make(map[int64]map[int64]*engagementCounts)

	for _, e := range engagements {
		if windowPosts[e.TargetUserID] == 0 {
			continue
		}
		if e.IsSelfLoop() {
			continue
		}

		byEngager, ok := totals[e.SourceUserID]
		if !ok {
			byEngager = make(map[int64]*engagementCounts)
			totals[e.SourceUserID] = byEngager
			engagers = append(engagers, e.SourceUserID)
		}
		c, ok := byEngager[e.TargetUserID]
		if !ok {
			c = &engagementCounts{}
			byEngager[e.TargetUserID] = c
			creatorOrder[e.SourceUserID] = append(creatorOrder[e.SourceUserID], e.TargetUserID)
		}

		switch e.EdgeType {
		case models.EdgeTypeLiked:
			c.likes++
		case models.EdgeTypeReplied:
			c.replies++
		case models.EdgeTypeRecasted:
			c.recasts++
		}
	}

	weights := EngagementWeights()
	for _, engager := range engagers {
		for _, creator := range creatorOrder[engager] {
			c := totals[engager][creator]
			p := float64(windowPosts[creator])

			likes := float64(c.likes) / p * weights.Weight(models.EdgeTypeLiked)
			replies := float64(c.replies) / p * weights.Weight(models.EdgeTypeReplied)
			recasts := float64(c.recasts) / p * weights.Weight(models.EdgeTypeRecasted)

			intensity := likes + replies + recasts
			if intensity <= 0 {
				continue
			}
			from, to := UserKey(engager), UserKey(creator)
			g.SetEdge(from, to, intensity)
			g.SetEdgeType(from, to, dominantEngagement(likes, replies, recasts).String())
		}
	}
	return g
}

// dominantEngagement picks the engagement type with the largest intensity
// contribution.
func dominantEngagement(likes, replies, recasts float64) models.EdgeType {
	best, bestWeight := models.EdgeTypeLiked, likes
	if replies > bestWeight {
		best, bestWeight = models.EdgeTypeReplied, replies
	}
	if recasts > bestWeight {
		best = models.EdgeTypeRecasted
	}
	return best
}
