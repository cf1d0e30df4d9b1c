// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Strategy is one way of computing a centrality vector. It reports false
// when it could not produce a usable result.
type Strategy struct {
	Name string
	Run  func(g *graph.Graph) (map[string]float64, bool)
}

// Chain tries strategies in order and returns the first success together
// with the name of the strategy that produced it.
func (e *Engine) Chain(g *graph.Graph, strategies ...Strategy) (map[string]float64, string) {
	for _, s := range strategies {
		scores, ok := e.attempt(s, g)
		if ok {
			return scores, s.Name
		}
		e.logger.Debug().Str("strategy", s.Name).Int("nodes", g.NodeCount()).Msg("centrality strategy failed, trying next")
	}
	return map[string]float64{}, ""
}

// attempt runs one strategy, converting a panic into a failure.
func (e *Engine) attempt(s Strategy, g *graph.Graph) (scores map[string]float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Str("strategy", s.Name).Interface("panic", r).Msg("centrality strategy panicked")
			scores, ok = nil, false
		}
	}()
	scores, ok = s.Run(g)
	if ok && !finite(scores) {
		return nil, false
	}
	return scores, ok
}

// Eigenvector returns weighted eigenvector centrality (left eigenvector for
// directed graphs, so a node is central when central nodes point at it).
//
// It tries power iteration, then a dense eigen decomposition, then degree
// centrality (in-degree for directed graphs). The second return value names
// the strategy that produced the result.
func (e *Engine) Eigenvector(g *graph.Graph) (map[string]float64, string) {
	if g.NodeCount() == 0 {
		return map[string]float64{}, ""
	}
	return e.Chain(g,
		Strategy{Name: "power_iteration", Run: e.eigenvectorPower},
		Strategy{Name: "dense_eigen", Run: e.eigenvectorDense},
		Strategy{Name: "degree", Run: func(g *graph.Graph) (map[string]float64, bool) {
			if g.Directed() {
				return e.InDegree(g), true
			}
			return e.Degree(g), true
		}},
	)
}

// eigenvectorPower runs power iteration on A+I starting from 1/N, with the
// result L2-normalized. It fails when the L1 change does not drop below
// N*EigenvectorTolerance within EigenvectorMaxIter iterations.
func (e *Engine) eigenvectorPower(g *graph.Graph) (map[string]float64, bool) {
	n := g.NodeCount()
	x := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}
	last := make([]float64, n)

	for iter := 0; iter < e.opts.EigenvectorMaxIter; iter++ {
		copy(last, x)
		for u := 0; u < n; u++ {
			nbrs, ws := g.Successors(u)
			for k, v := range nbrs {
				x[v] += last[u] * ws[k]
			}
		}
		norm := floats.Norm(x, 2)
		if norm == 0 {
			norm = 1
		}
		floats.Scale(1/norm, x)

		if floats.Distance(x, last, 1) < float64(n)*e.opts.EigenvectorTolerance {
			out := make(map[string]float64, n)
			for i, v := range x {
				out[g.Key(i)] = v
			}
			return out, true
		}
	}
	return nil, false
}

// eigenvectorDense solves for the eigenvector of the largest real
// eigenvalue of A^T with a dense decomposition.
func (e *Engine) eigenvectorDense(g *graph.Graph) (map[string]float64, bool) {
	n := g.NodeCount()
	if n > e.opts.EigenvectorDenseMaxNodes {
		return nil, false
	}

	// at[v][u] = w(u->v), so the right eigenvector of at is the left
	// eigenvector of the adjacency matrix.
	at := mat.NewDense(n, n, nil)
	for u := 0; u < n; u++ {
		nbrs, ws := g.Successors(u)
		for k, v := range nbrs {
			at.Set(v, u, at.At(v, u)+ws[k])
		}
	}

	var eig mat.Eigen
	if !eig.Factorize(at, mat.EigenRight) {
		return nil, false
	}
	values := eig.Values(nil)
	best := -1
	for i, v := range values {
		if best < 0 || real(v) > real(values[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}

	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		vec[i] = real(vecs.At(i, best))
	}

	norm := floats.Norm(vec, 2)
	if norm == 0 {
		return nil, false
	}
	if floats.Sum(vec) < 0 {
		norm = -norm
	}
	floats.Scale(1/norm, vec)

	out := make(map[string]float64, n)
	for i, v := range vec {
		out[g.Key(i)] = v
	}
	return out, true
}
