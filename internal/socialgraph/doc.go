// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package socialgraph builds the weighted graph variants that Curatorgraph
analyzes from raw interaction records.

Each builder is a pure function of its inputs. It reduces a list of
interaction edges to weighted adjacency using one of the edge weight tables:

	SocialWeights      AUTHORED=10  LIKED=1  RECASTED=3  REPLIED=2
	TrustWeights                    LIKED=1  RECASTED=2  REPLIED=0.5
	EngagementWeights               LIKED=1  RECASTED=3  REPLIED=2

# Graph Variants

  - BuildSocialGraph: every interaction type, social weights
  - BuildTrustGraph: LIKED, REPLIED and RECASTED only, trust weights
  - BuildQualityAdjustedGraph: social weights scaled by a post-volume
    penalty and an engagement-rate bonus of the target
  - BuildEngagementGraph: engager -> creator, engagement weights
  - BuildEngagementIntensityGraph: engagement normalized by the creator's
    post count in the analysis window
  - BuildUserArtistGraph: undirected bipartite user/artist affinity
  - BuildArtistAuthorityGraph: artist projection of the bipartite graph
    through shared curators, weighted by curator PageRank

# Shared Rules

Every user passed to a user-graph builder becomes a node, even without
edges. Self-loops never become edges. Multiple interactions between the
same ordered pair accumulate into one edge, and only pairs whose final
weight is positive are materialized. An edge type missing from the active
weight table contributes zero.

User nodes are keyed by the decimal user id (see UserKey). Bipartite nodes
are keyed "user_<id>" and "artist_<name>".
*/
package socialgraph
