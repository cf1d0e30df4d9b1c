// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
)

// ColdStartUsers returns the users of the social graph with fewer than
// Fallback.MinTrustEdges outgoing trust edges, in social graph order.
func (e *Engine) ColdStartUsers(social, trustGraph *graph.Graph) []int64 {
	users := make([]int64, 0)
	if social == nil {
		return users
	}

	for _, key := range social.Nodes() {
		edges := 0
		if trustGraph != nil {
			edges = trustGraph.OutDegree(key)
		}
		if edges >= e.config.Fallback.MinTrustEdges {
			continue
		}
		if id, ok := socialgraph.ParseUserKey(key); ok {
			users = append(users, id)
		}
	}
	return users
}

// CompareCoverage compares, per user, the number of trust curators with the
// number of global PageRank curators the fallback would offer.
func (e *Engine) CompareCoverage(s *Snapshot, userIDs []int64) CoverageSummary {
	cfg := e.config.Coverage
	summary := CoverageSummary{
		Users:       len(userIDs),
		Comparisons: make([]CoverageComparison, 0, len(userIDs)),
	}

	for _, id := range userIDs {
		trusted := trustedCurators(s.Trust, id, s.PostCounts, e.config.Trust, cfg.MinTrust, cfg.MaxCurators)
		ranked := e.fallbackCurators(s, id, cfg.MaxCurators, false)

		quality := 0.0
		if len(ranked) > 0 {
			for i := range ranked {
				quality += ranked[i].PageRankScore
			}
			quality /= float64(len(ranked))
		}

		c := CoverageComparison{
			UserID:           id,
			TrustCurators:    len(trusted),
			PageRankCurators: len(ranked),
			HasTrustCoverage: len(trusted) > 0,
			NeedsFallback:    len(trusted) < cfg.FallbackThreshold,
			FallbackQuality:  quality,
		}
		if c.HasTrustCoverage {
			summary.WithTrustCoverage++
		}
		if c.NeedsFallback {
			summary.NeedingFallback++
		}
		summary.Comparisons = append(summary.Comparisons, c)
	}
	return summary
}
