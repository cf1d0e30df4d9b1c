// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"container/heap"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Betweenness returns normalized weighted betweenness centrality, treating
// edge weight as distance. Graphs with fewer nodes than
// BetweennessExactThreshold are computed exactly; larger graphs sample
// BetweennessSamples source nodes and scale the result by n/k.
//
// Values are normalized by 1/((n-1)(n-2)). On failure every node gets 0.
func (e *Engine) Betweenness(g *graph.Graph) (scores map[string]float64) {
	n := g.NodeCount()
	if n == 0 {
		return map[string]float64{}
	}
	if n <= 2 || g.EdgeCount() == 0 {
		return uniform(g, 0)
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Int("nodes", n).Msg("betweenness failed, using zero scores")
			scores = uniform(g, 0)
		}
	}()

	var raw map[string]float64
	if n < e.opts.BetweennessExactThreshold {
		wg := toGonum(g)
		raw = keyed(g, network.BetweennessWeighted(wg, path.DijkstraAllPaths(wg)), 0)
	} else {
		k := min(e.opts.BetweennessSamples, n)
		raw = sampledBetweenness(g, k, e.opts.Seed)
		scale := float64(n) / float64(k)
		for key := range raw {
			raw[key] *= scale
		}
		e.logger.Debug().Int("nodes", n).Int("samples", k).Msg("approximated betweenness by sampling")
	}

	norm := 1.0 / float64((n-1)*(n-2))
	for key, v := range raw {
		raw[key] = v * norm
	}
	return raw
}

// sampledBetweenness runs weighted Brandes accumulation from k distinct
// source nodes chosen with a seeded generator. For undirected graphs each
// pair is counted from both ends, matching the exact computation.
func sampledBetweenness(g *graph.Graph, k int, seed uint64) map[string]float64 {
	n := g.NodeCount()
	rng := rand.New(rand.NewPCG(seed, seed))
	sources := rng.Perm(n)[:k]

	cb := make([]float64, n)
	dist := make([]float64, n)
	sigma := make([]float64, n)
	delta := make([]float64, n)
	preds := make([][]int, n)

	for _, s := range sources {
		for i := range dist {
			dist[i] = math.Inf(1)
			sigma[i] = 0
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		dist[s] = 0
		sigma[s] = 1

		var stack []int
		done := make([]bool, n)
		pq := &distanceQueue{{node: s, dist: 0}}
		for pq.Len() > 0 {
			cur := heap.Pop(pq).(queued)
			u := cur.node
			if done[u] || cur.dist > dist[u] {
				continue
			}
			done[u] = true
			stack = append(stack, u)

			nbrs, ws := g.Successors(u)
			for i, v := range nbrs {
				if v == u {
					continue
				}
				alt := dist[u] + ws[i]
				switch {
				case alt < dist[v]:
					dist[v] = alt
					sigma[v] = sigma[u]
					preds[v] = append(preds[v][:0], u)
					heap.Push(pq, queued{node: v, dist: alt})
				case alt == dist[v]:
					sigma[v] += sigma[u]
					preds[v] = append(preds[v], u)
				}
			}
		}

		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	out := make(map[string]float64, n)
	for i, v := range cb {
		out[g.Key(i)] = v
	}
	return out
}

// queued is a node waiting in the Dijkstra frontier.
type queued struct {
	node int
	dist float64
}

// distanceQueue is a min-heap of queued nodes ordered by distance.
type distanceQueue []queued

func (q distanceQueue) Len() int            { return len(q) }
func (q distanceQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q distanceQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x interface{}) { *q = append(*q, x.(queued)) }
func (q *distanceQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
