// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package centrality ranks the nodes of any weighted graph built by package
socialgraph. It knows nothing about what the graph means.

# Algorithms

  - PageRank: damped, edge-weighted random walk (gonum network.PageRankSparse)
  - Degree: normalized degree, in/out degree for directed graphs
  - Betweenness: exact weighted betweenness (gonum) below a node threshold,
    k-source sampled Brandes above it
  - Eigenvector: power iteration, then a dense eigen decomposition (gonum
    mat.Eigen), then degree centrality
  - Communities: Louvain (gonum community.Modularize) or greedy modularity
    agglomeration on the undirected projection
  - Clustering: weighted local clustering coefficient for undirected graphs
  - Influence: combined per-node metrics with a blended influence score

# Failure Semantics

Ranking is advisory. No function in this package returns an error or
panics for a well-formed graph: empty graphs produce empty maps, edgeless
graphs produce uniform PageRank, and numerical failures fall back to the
documented alternatives. Fallbacks are logged on the Engine's logger.

# Determinism

PageRank and Louvain start from random state. PageRank converges to the
same vector within the configured tolerance on every run. Louvain is seeded,
but gonum iterates graph nodes in map order, so community assignment can
differ between runs when several partitions have equal modularity.
*/
package centrality
