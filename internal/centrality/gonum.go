// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"math"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// toGonum converts g into a gonum weighted graph whose node IDs are the
// dense indices of g. Self-loops are dropped; gonum simple graphs reject them.
func toGonum(g *graph.Graph) gonum.Weighted {
	if g.Directed() {
		return toGonumDirected(g)
	}
	return toGonumUndirected(g)
}

func toGonumDirected(g *graph.Graph) *simple.WeightedDirectedGraph {
	dg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < g.NodeCount(); i++ {
		dg.AddNode(simple.Node(i))
	}
	for i := 0; i < g.NodeCount(); i++ {
		nbrs, ws := g.Successors(i)
		for k, j := range nbrs {
			if i == j {
				continue
			}
			dg.SetWeightedEdge(dg.NewWeightedEdge(simple.Node(i), simple.Node(j), ws[k]))
		}
	}
	return dg
}

func toGonumUndirected(g *graph.Graph) *simple.WeightedUndirectedGraph {
	if g.Directed() {
		g = g.Undirected()
	}
	ug := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < g.NodeCount(); i++ {
		ug.AddNode(simple.Node(i))
	}
	for i := 0; i < g.NodeCount(); i++ {
		nbrs, ws := g.Successors(i)
		for k, j := range nbrs {
			if j <= i {
				continue
			}
			ug.SetWeightedEdge(ug.NewWeightedEdge(simple.Node(i), simple.Node(j), ws[k]))
		}
	}
	return ug
}

// keyed converts a gonum id-keyed result to node keys, filling nodes absent
// from the result with fill.
func keyed(g *graph.Graph, byID map[int64]float64, fill float64) map[string]float64 {
	out := make(map[string]float64, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		v, ok := byID[int64(i)]
		if !ok {
			v = fill
		}
		out[g.Key(i)] = v
	}
	return out
}

// uniform returns value for every node of g.
func uniform(g *graph.Graph, value float64) map[string]float64 {
	out := make(map[string]float64, g.NodeCount())
	for _, k := range g.Nodes() {
		out[k] = value
	}
	return out
}

// finite reports whether every value is a finite number.
func finite(scores map[string]float64) bool {
	for _, v := range scores {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
