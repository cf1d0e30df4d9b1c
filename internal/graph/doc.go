// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package graph provides the weighted graph used by every graph builder and
ranking algorithm in Curatorgraph.

A Graph is either directed or undirected. Nodes are identified by string keys
and carry typed metadata (NodeAttrs). Edges carry an accumulated weight, an
optional interaction type tag and an optional common-curator count.

# Accumulation

AddWeight adds to the weight of an existing edge instead of replacing it, so
several raw interactions between the same ordered pair reduce to a single
weighted edge:

	g := graph.NewDirected()
	g.AddWeight("1", "2", 1.0) // LIKED
	g.AddWeight("1", "2", 3.0) // RECASTED
	e, _ := g.Edge("1", "2")   // e.Weight == 4.0

SetEdge replaces the weight and is used when a builder has already reduced
its input.

# Ordering

Node and edge iteration follow insertion order. Two graphs built from the
same records in the same order are identical, including their floating point
weights.

# Thread Safety

A Graph is not safe for concurrent mutation. Once built it is treated as
immutable and may be read from any number of goroutines.
*/
package graph
