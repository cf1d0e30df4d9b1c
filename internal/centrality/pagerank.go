// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/network"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// ErrRankingFailed is returned by TryPageRank when the computation panicked
// or produced a non-finite vector.
var ErrRankingFailed = errors.New("ranking failed")

// TryPageRank computes weighted PageRank and reports numerical failure
// instead of hiding it. Undirected graphs are ranked as if every edge were
// reciprocal. Non-finite or negative edge weights are a failure. An empty
// graph yields an empty map and an edgeless graph a uniform distribution;
// neither is a failure.
func (e *Engine) TryPageRank(g *graph.Graph) (scores map[string]float64, err error) {
	n := g.NodeCount()
	if n == 0 {
		return map[string]float64{}, nil
	}
	if g.EdgeCount() == 0 {
		return uniform(g, 1.0/float64(n)), nil
	}

	for _, edge := range g.Edges() {
		if math.IsNaN(edge.Weight) || math.IsInf(edge.Weight, 0) || edge.Weight < 0 {
			return nil, fmt.Errorf("%w: edge %s->%s has weight %v", ErrRankingFailed, edge.From, edge.To, edge.Weight)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			scores, err = nil, fmt.Errorf("%w: pagerank: %v", ErrRankingFailed, r)
		}
	}()

	ranks := network.PageRankSparse(toGonumDirected(g), e.opts.Alpha, e.opts.Tolerance)
	scores = keyed(g, ranks, 0)

	var sum float64
	for _, v := range scores {
		sum += v
	}
	if !finite(scores) || sum <= 0 {
		return nil, fmt.Errorf("%w: pagerank produced a degenerate vector", ErrRankingFailed)
	}
	for k, v := range scores {
		scores[k] = v / sum
	}
	return scores, nil
}

// PageRank computes weighted PageRank. It never fails: any numerical
// failure degrades to the uniform distribution 1/N.
func (e *Engine) PageRank(g *graph.Graph) map[string]float64 {
	scores, err := e.TryPageRank(g)
	if err != nil {
		e.logger.Warn().Err(err).Int("nodes", g.NodeCount()).Msg("pagerank failed, using uniform distribution")
		return uniform(g, 1.0/float64(g.NodeCount()))
	}
	return scores
}
