// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package trust implements the closed-form curator trust score.
//
// A trust score says how much a user trusts another user's music taste. It
// is derived from the weighted interactions the user directed at the
// curator, normalized by how much the curator posts:
//
//	score = (weighted_interactions / total_posts)
//	        × recency(days_since_last_interaction)
//	        × mutual(is_mutual)
//	        × quality(engagement_rate)
//
// clamped to [0, 1]. Trust scores are never stored; they are recomputed
// from their inputs whenever a curator list is built.
//
// # Factors
//
//   - recency decays linearly from 1.0 at day 0 to 0.5 at day 90 and stays
//     at 0.5 afterwards.
//   - mutual is 1.2 when the curator also interacts with the user.
//   - quality is 1 + min(0.2, engagement_rate × 0.2).
//
// The constants live in Params so alternative calibrations can be tried
// without touching the callers.
//
// # Usage
//
//	score := trust.Score(weighted, posts, isMutual)
//
//	p := trust.DefaultParams()
//	score = p.Score(trust.Input{
//	    WeightedInteractions: weighted,
//	    TotalPosts:           posts,
//	    DaysSinceInteraction: 30,
//	    EngagementRate:       0.4,
//	})
package trust
