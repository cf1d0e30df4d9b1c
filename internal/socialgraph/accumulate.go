// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/models"
)

// pairWeight is the running weight of one ordered user pair.
type pairWeight struct {
	weight    float64
	byType    map[models.EdgeType]float64
	typeOrder []models.EdgeType
}

// dominantType returns the interaction type that contributed the most
// weight. Ties go to the type seen first.
func (p *pairWeight) dominantType() models.EdgeType {
	best := models.EdgeTypeUnknown
	bestWeight := 0.0
	for _, t := range p.typeOrder {
		if w := p.byType[t]; w > bestWeight {
			best, bestWeight = t, w
		}
	}
	return best
}

// accumulator reduces interactions to source -> target -> weight while
// remembering first-seen order for deterministic output.
type accumulator struct {
	sources []int64
	targets map[int64][]int64
	pairs   map[int64]map[int64]*pairWeight
}

func newAccumulator() *accumulator {
	return &accumulator{
		targets: make(map[int64][]int64),
		pairs:   make(map[int64]map[int64]*pairWeight),
	}
}

// add accumulates w for source -> target under interaction type t.
func (a *accumulator) add(source, target int64, t models.EdgeType, w float64) {
	bySource, ok := a.pairs[source]
	if !ok {
		bySource = make(map[int64]*pairWeight)
		a.pairs[source] = bySource
		a.sources = append(a.sources, source)
	}
	p, ok := bySource[target]
	if !ok {
		p = &pairWeight{byType: make(map[models.EdgeType]float64)}
		bySource[target] = p
		a.targets[source] = append(a.targets[source], target)
	}
	p.weight += w
	if _, seen := p.byType[t]; !seen {
		p.typeOrder = append(p.typeOrder, t)
	}
	p.byType[t] += w
}

// materialize writes every pair with positive weight into g.
func (a *accumulator) materialize(g *graph.Graph) {
	for _, source := range a.sources {
		for _, target := range a.targets[source] {
			p := a.pairs[source][target]
			if p.weight <= 0 {
				continue
			}
			from, to := UserKey(source), UserKey(target)
			g.SetEdge(from, to, p.weight)
			if t := p.dominantType(); t != models.EdgeTypeUnknown {
				g.SetEdgeType(from, to, t.String())
			}
		}
	}
}

// addUsers adds every user as a node of g.
func addUsers(g *graph.Graph, users []models.UserNode) {
	for _, u := range users {
		g.AddNode(UserKey(u.NodeID), graph.NodeAttrs{
			DisplayName: u.DisplayName,
			UserID:      u.NodeID,
		})
	}
}
