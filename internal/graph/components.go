// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package graph

// Components returns the connected components of the graph, ignoring edge
// direction (weak components for directed graphs). Components are ordered by
// their first node in insertion order.
func (g *Graph) Components() [][]string {
	n := len(g.keys)
	seen := make([]bool, n)
	var out [][]string

	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		var comp []string
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			comp = append(comp, g.keys[u])
			for _, v := range g.succ[u].order {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
			if g.directed {
				for _, v := range g.pred[u].order {
					if !seen[v] {
						seen[v] = true
						queue = append(queue, v)
					}
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// IsConnected reports whether the graph has exactly one (weak) component.
// The empty graph is not connected.
func (g *Graph) IsConnected() bool {
	if len(g.keys) == 0 {
		return false
	}
	return len(g.Components()) == 1
}

// Summary describes a graph for diagnostics and reports.
type Summary struct {
	Name     string  `json:"name"`
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Directed bool    `json:"is_directed"`
	Density  float64 `json:"density"`

	// Connected is nil for empty graphs.
	Connected *bool `json:"connected,omitempty"`

	// Components is set only when the graph is not connected.
	Components *int `json:"components,omitempty"`
}

// Summarize builds a Summary for g.
func Summarize(name string, g *Graph) Summary {
	s := Summary{
		Name:     name,
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		Directed: g.Directed(),
		Density:  g.Density(),
	}
	if s.Nodes == 0 {
		return s
	}

	comps := len(g.Components())
	connected := comps == 1
	s.Connected = &connected
	if !connected {
		s.Components = &comps
	}
	return s
}
