// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package recommend discovers trusted curators and recommends artists
// through them.
//
// # Architecture
//
// Recommendations are computed from a read-only Snapshot of the graphs
// built by the socialgraph package:
//
//   - Trust path: a user's outgoing trust edges are scored with the trust
//     formula, and the artists of the resulting curators are aggregated by
//     trust × affinity.
//   - PageRank fallback: users with too few trust edges get curators ranked
//     by PageRank on the social graph, scoped to their community when one
//     is known. Results always carry the source that produced them.
//
// # Cold Start
//
// A cold-start user has fewer than MinTrustEdges outgoing trust edges.
// Curators selects the fallback path for those users, and Recommendations
// returns artists favored by the top fallback curators.
//
// # Determinism
//
// Curators and recommendations are sorted by score with ties kept in graph
// insertion order, so identical input yields identical output. PageRank is
// computed iteratively and may differ in the last digits between runs;
// community assignments follow the selected community algorithm.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, centrality.New(centrality.DefaultOptions(), logger), logger)
//
//	snap := &recommend.Snapshot{
//	    Social:     social,
//	    Trust:      trustGraph,
//	    Bipartite:  bipartite,
//	    PostCounts: postCounts,
//	}
//	curators := engine.Curators(snap, userID)
//	recs := engine.Recommendations(snap, userID)
//
// # Thread Safety
//
// The Engine is safe for concurrent use. A Snapshot must not be modified
// while recommendations are computed from it.
package recommend
