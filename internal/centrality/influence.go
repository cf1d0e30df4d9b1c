// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"sort"

	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Metrics holds every centrality measure for one graph.
type Metrics struct {
	// Degree is set for undirected graphs.
	Degree map[string]float64 `json:"degree_centrality,omitempty"`

	// InDegree and OutDegree are set for directed graphs.
	InDegree  map[string]float64 `json:"in_degree_centrality,omitempty"`
	OutDegree map[string]float64 `json:"out_degree_centrality,omitempty"`

	Betweenness map[string]float64 `json:"betweenness_centrality"`
	Eigenvector map[string]float64 `json:"eigenvector_centrality"`

	// EigenvectorMethod names the strategy that produced Eigenvector.
	EigenvectorMethod string `json:"eigenvector_method"`

	// Clustering is set for undirected graphs.
	Clustering map[string]float64 `json:"clustering_coefficient,omitempty"`
}

// Metrics computes degree, betweenness, eigenvector and (for undirected
// graphs) clustering centrality. An empty graph yields zero Metrics.
func (e *Engine) Metrics(g *graph.Graph) Metrics {
	if g.NodeCount() == 0 {
		return Metrics{}
	}

	var m Metrics
	if g.Directed() {
		m.InDegree = e.InDegree(g)
		m.OutDegree = e.OutDegree(g)
	} else {
		m.Degree = e.Degree(g)
		m.Clustering = e.Clustering(g)
	}
	m.Betweenness = e.Betweenness(g)
	m.Eigenvector, m.EigenvectorMethod = e.Eigenvector(g)
	return m
}

// NodeInfluence is the combined influence profile of one node.
type NodeInfluence struct {
	Key         string  `json:"key"`
	InDegree    float64 `json:"in_degree"`
	OutDegree   float64 `json:"out_degree"`
	PageRank    float64 `json:"pagerank"`
	Betweenness float64 `json:"betweenness"`

	// Score is 0.5*pagerank + 0.3*in_degree + 0.2*betweenness.
	Score float64 `json:"influence_score"`
}

// Influence computes the combined influence profile of every node, sorted
// by Score descending. pagerank may be supplied to reuse an earlier result;
// nil computes it.
func (e *Engine) Influence(g *graph.Graph, pagerank map[string]float64) []NodeInfluence {
	if g.NodeCount() == 0 {
		return nil
	}
	if pagerank == nil {
		pagerank = e.PageRank(g)
	}
	in := e.InDegree(g)
	out := e.OutDegree(g)
	btw := e.Betweenness(g)

	result := make([]NodeInfluence, 0, g.NodeCount())
	for _, k := range g.Nodes() {
		ni := NodeInfluence{
			Key:         k,
			InDegree:    in[k],
			OutDegree:   out[k],
			PageRank:    pagerank[k],
			Betweenness: btw[k],
		}
		ni.Score = 0.5*ni.PageRank + 0.3*ni.InDegree + 0.2*ni.Betweenness
		result = append(result, ni)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// Ranked is a node with a score.
type Ranked struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// Top returns the n highest scores, ties broken by key. n <= 0 returns all.
func Top(scores map[string]float64, n int) []Ranked {
	out := make([]Ranked, 0, len(scores))
	for k, v := range scores {
		out = append(out, Ranked{Key: k, Score: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
