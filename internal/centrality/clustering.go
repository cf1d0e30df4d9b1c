// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"math"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Clustering returns the weighted local clustering coefficient of every
// node of an undirected graph: the geometric mean of normalized triangle
// edge weights over all neighbor pairs. Directed graphs yield an empty map.
func (e *Engine) Clustering(g *graph.Graph) map[string]float64 {
	out := make(map[string]float64, g.NodeCount())
	if g.Directed() || g.NodeCount() == 0 {
		return out
	}

	maxWeight := 0.0
	for _, edge := range g.Edges() {
		maxWeight = math.Max(maxWeight, edge.Weight)
	}
	if maxWeight == 0 {
		return uniform(g, 0)
	}

	n := g.NodeCount()
	weights := make([]map[int]float64, n)
	for i := 0; i < n; i++ {
		nbrs, ws := g.Successors(i)
		weights[i] = make(map[int]float64, len(nbrs))
		for k, j := range nbrs {
			if j != i {
				weights[i][j] = ws[k] / maxWeight
			}
		}
	}

	for i := 0; i < n; i++ {
		deg := len(weights[i])
		if deg < 2 {
			out[g.Key(i)] = 0
			continue
		}

		nbrs, _ := g.Successors(i)
		var triangles float64
		for x, j := range nbrs {
			if j == i {
				continue
			}
			for _, k := range nbrs[x+1:] {
				if k == i {
					continue
				}
				if wjk, ok := weights[j][k]; ok {
					triangles += math.Cbrt(weights[i][j] * weights[i][k] * wjk)
				}
			}
		}
		out[g.Key(i)] = 2 * triangles / float64(deg*(deg-1))
	}
	return out
}
