// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/socialgraph"
	"github.com/tomtom215/curatorgraph/internal/trust"
)

// MutualTrust returns every pair of users with trust edges in both
// directions, each pair once, strongest mutual strength first. Both trust
// scores are computed as mutual.
func (e *Engine) MutualTrust(trustGraph *graph.Graph, postCounts map[int64]int) []MutualRelationship {
	rels := make([]MutualRelationship, 0)
	if trustGraph == nil {
		return rels
	}

	seen := make(map[[2]int64]struct{})
	for _, a := range trustGraph.Nodes() {
		idA, ok := socialgraph.ParseUserKey(a)
		if !ok {
			continue
		}
		for _, forward := range trustGraph.OutEdges(a) {
			reverse, ok := trustGraph.Edge(forward.To, a)
			if !ok {
				continue
			}
			idB, ok := socialgraph.ParseUserKey(forward.To)
			if !ok || idB == idA {
				continue
			}

			pair := [2]int64{min(idA, idB), max(idA, idB)}
			if _, done := seen[pair]; done {
				continue
			}
			seen[pair] = struct{}{}

			postsA := postsOf(postCounts, idA)
			postsB := postsOf(postCounts, idB)
			aToB := e.config.Trust.Score(trust.NewInput(forward.Weight, postsB, true))
			bToA := e.config.Trust.Score(trust.NewInput(reverse.Weight, postsA, true))

			rels = append(rels, MutualRelationship{
				UserA:            MutualParty{UserID: idA, DisplayName: displayName(trustGraph, a, idA), Posts: postsA},
				UserB:            MutualParty{UserID: idB, DisplayName: displayName(trustGraph, forward.To, idB), Posts: postsB},
				TrustAToB:        aToB,
				TrustBToA:        bToA,
				InteractionsAToB: forward.Weight,
				InteractionsBToA: reverse.Weight,
				MutualStrength:   math.Min(aToB, bToA),
				TrustSymmetry:    math.Abs(aToB - bToA),
				CombinedTrust:    (aToB + bToA) / 2,
			})
		}
	}

	sort.SliceStable(rels, func(i, j int) bool {
		return rels[i].MutualStrength > rels[j].MutualStrength
	})
	return rels
}

// AnalyzeSymmetry summarizes mutual relationships. A relationship is
// symmetric when its trust scores differ by less than
// Symmetry.SymmetricBelow and strong when both exceed Symmetry.StrongAbove.
// No relationships yield a zero report.
func (e *Engine) AnalyzeSymmetry(rels []MutualRelationship) SymmetryReport {
	if len(rels) == 0 {
		return SymmetryReport{}
	}

	report := SymmetryReport{
		Total:          len(rels),
		SymmetryValues: make([]float64, 0, len(rels)),
		StrengthValues: make([]float64, 0, len(rels)),
	}

	var strength, symmetry float64
	for i := range rels {
		r := &rels[i]
		strength += r.MutualStrength
		symmetry += r.TrustSymmetry
		report.SymmetryValues = append(report.SymmetryValues, r.TrustSymmetry)
		report.StrengthValues = append(report.StrengthValues, r.MutualStrength)

		if r.TrustSymmetry < e.config.Symmetry.SymmetricBelow {
			report.Symmetric++
		} else {
			report.Asymmetric++
		}
		if r.TrustAToB > e.config.Symmetry.StrongAbove && r.TrustBToA > e.config.Symmetry.StrongAbove {
			report.StrongMutual++
		}
	}

	n := float64(len(rels))
	report.AvgMutualStrength = strength / n
	report.AvgTrustSymmetry = symmetry / n
	report.SymmetricRate = float64(report.Symmetric) / n
	report.StrongMutualRate = float64(report.StrongMutual) / n
	return report
}
