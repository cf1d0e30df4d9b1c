// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"fmt"
	"math/rand/v2"
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Algorithm selects a community detection algorithm.
type Algorithm string

const (
	// AlgorithmLouvain is the Louvain modularity optimizer.
	AlgorithmLouvain Algorithm = "louvain"

	// AlgorithmGreedyModularity is Clauset-Newman-Moore greedy agglomeration.
	AlgorithmGreedyModularity Algorithm = "greedy_modularity"
)

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmLouvain, AlgorithmGreedyModularity:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("unknown community algorithm %q", s)
	}
}

// Partition is the result of community detection.
type Partition struct {
	// Membership maps node key to community id. Ids are grouping labels
	// only: 0 is the largest community.
	Membership map[string]int `json:"membership"`

	// Count is the number of communities.
	Count int `json:"count"`

	// Modularity is the modularity Q of the partition on the undirected
	// projection.
	Modularity float64 `json:"modularity"`

	// Algorithm names the algorithm that produced the partition.
	Algorithm Algorithm `json:"algorithm"`
}

// Members returns the node keys of community id.
func (p Partition) Members(id int) []string {
	var out []string
	for k, c := range p.Membership {
		if c == id {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Communities detects communities on the undirected projection of g and
// returns node key -> community id. An unknown algorithm, an empty graph or
// an internal failure yields an empty map.
func (e *Engine) Communities(g *graph.Graph, algorithm Algorithm) map[string]int {
	p, ok := e.Partition(g, algorithm)
	if !ok {
		return map[string]int{}
	}
	return p.Membership
}

// Partition is Communities with the partition metadata. It reports false
// when no partition could be computed.
func (e *Engine) Partition(g *graph.Graph, algorithm Algorithm) (p Partition, ok bool) {
	if g.NodeCount() == 0 {
		return Partition{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Str("algorithm", string(algorithm)).Msg("community detection failed")
			p, ok = Partition{}, false
		}
	}()

	ug := toGonumUndirected(g)

	var groups [][]int
	switch algorithm {
	case AlgorithmLouvain:
		reduced := community.Modularize(ug, e.opts.Resolution, rand.NewPCG(e.opts.Seed, e.opts.Seed))
		for _, members := range reduced.Communities() {
			ids := make([]int, len(members))
			for i, n := range members {
				ids[i] = int(n.ID())
			}
			groups = append(groups, ids)
		}
	case AlgorithmGreedyModularity:
		groups = greedyModularity(g.Undirected(), e.opts.Resolution)
	default:
		e.logger.Error().Str("algorithm", string(algorithm)).Msg("unknown community detection algorithm")
		return Partition{}, false
	}

	groups = orderGroups(groups)

	membership := make(map[string]int, g.NodeCount())
	nodes := make([][]gonum.Node, len(groups))
	for c, members := range groups {
		for _, i := range members {
			membership[g.Key(i)] = c
			nodes[c] = append(nodes[c], simple.Node(i))
		}
	}

	q := 0.0
	if g.EdgeCount() > 0 {
		q = community.Q(ug, nodes, e.opts.Resolution)
	}

	e.logger.Debug().
		Str("algorithm", string(algorithm)).
		Int("communities", len(groups)).
		Float64("modularity", q).
		Msg("detected communities")

	return Partition{
		Membership: membership,
		Count:      len(groups),
		Modularity: q,
		Algorithm:  algorithm,
	}, true
}

// orderGroups sorts members by node index and groups by size, largest
// first, ties broken by smallest member.
func orderGroups(groups [][]int) [][]int {
	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		sorted := append([]int(nil), g...)
		sort.Ints(sorted)
		out = append(out, sorted)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}
