// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"github.com/tomtom215/curatorgraph/internal/graph"
)

// greedyModularity partitions the undirected graph g by Clauset-Newman-Moore
// agglomeration: starting from singletons, repeatedly merge the pair of
// adjacent communities with the largest modularity gain while the gain is
// positive. Ties merge the pair with the smallest community ids. Returns
// groups of dense node indices.
func greedyModularity(g *graph.Graph, resolution float64) [][]int {
	n := g.NodeCount()
	members := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
	}

	total := 0.0
	strength := make([]float64, n)
	for i := 0; i < n; i++ {
		nbrs, ws := g.Successors(i)
		for k, j := range nbrs {
			if j == i {
				continue
			}
			strength[i] += ws[k]
		}
		total += strength[i]
	}
	if total == 0 {
		return singletons(n)
	}

	// e[c][d] is the fraction of edge ends joining c and d; a[c] is the
	// fraction of edge ends attached to c.
	e := make(map[int]map[int]float64, n)
	a := make(map[int]float64, n)
	for i := 0; i < n; i++ {
		a[i] = strength[i] / total
		nbrs, ws := g.Successors(i)
		for k, j := range nbrs {
			if j == i {
				continue
			}
			if e[i] == nil {
				e[i] = make(map[int]float64)
			}
			e[i][j] += ws[k] / total
		}
	}

	for {
		bestC, bestD := -1, -1
		bestGain := 0.0
		for c, row := range e {
			for d, ecd := range row {
				if d <= c {
					continue
				}
				gain := 2 * (ecd - resolution*a[c]*a[d])
				if gain > bestGain || (gain == bestGain && bestC >= 0 && lessPair(c, d, bestC, bestD)) {
					bestC, bestD, bestGain = c, d, gain
				}
			}
		}
		if bestC < 0 || bestGain <= 0 {
			break
		}
		mergeCommunities(e, a, members, bestC, bestD)
	}

	out := make([][]int, 0, len(members))
	for _, m := range members {
		out = append(out, m)
	}
	return out
}

// mergeCommunities folds community d into c.
func mergeCommunities(e map[int]map[int]float64, a map[int]float64, members map[int][]int, c, d int) {
	for x, w := range e[d] {
		if x == c {
			continue
		}
		if e[c] == nil {
			e[c] = make(map[int]float64)
		}
		e[c][x] += w
		e[x][c] += w
		delete(e[x], d)
	}
	delete(e[c], d)
	delete(e, d)

	a[c] += a[d]
	delete(a, d)

	members[c] = append(members[c], members[d]...)
	delete(members, d)
}

func lessPair(c, d, bc, bd int) bool {
	if c != bc {
		return c < bc
	}
	return d < bd
}

func singletons(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = []int{i}
	}
	return out
}
