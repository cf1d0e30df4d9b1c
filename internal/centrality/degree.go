// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"github.com/tomtom215/curatorgraph/internal/graph"
)

// degreeBy normalizes a per-node degree by n-1. Graphs with a single node
// give that node 1.
func degreeBy(g *graph.Graph, degree func(string) int) map[string]float64 {
	n := g.NodeCount()
	out := make(map[string]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		return uniform(g, 1)
	}
	scale := 1.0 / float64(n-1)
	for _, k := range g.Nodes() {
		out[k] = float64(degree(k)) * scale
	}
	return out
}

// Degree returns normalized degree centrality. For directed graphs the
// degree is in-degree plus out-degree.
func (e *Engine) Degree(g *graph.Graph) map[string]float64 {
	return degreeBy(g, g.Degree)
}

// InDegree returns normalized in-degree centrality.
func (e *Engine) InDegree(g *graph.Graph) map[string]float64 {
	return degreeBy(g, g.InDegree)
}

// OutDegree returns normalized out-degree centrality.
func (e *Engine) OutDegree(g *graph.Graph) map[string]float64 {
	return degreeBy(g, g.OutDegree)
}
