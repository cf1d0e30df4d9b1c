// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"github.com/tomtom215/curatorgraph/internal/models"
)

// WeightTable maps an interaction type to its edge weight.
type WeightTable map[models.EdgeType]float64

// Weight returns the weight of t, or 0 when t is not in the table.
func (w WeightTable) Weight(t models.EdgeType) float64 {
	return w[t]
}

// Has reports whether t is part of the table.
func (w WeightTable) Has(t models.EdgeType) bool {
	_, ok := w[t]
	return ok
}

// Clone returns a copy of the table.
func (w WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// SocialWeights returns the general social interaction weights.
func SocialWeights() WeightTable {
	return WeightTable{
		models.EdgeTypeAuthored: 10.0,
		models.EdgeTypeLiked:    1.0,
		models.EdgeTypeRecasted: 3.0,
		models.EdgeTypeReplied:  2.0,
	}
}

// TrustWeights returns the trust interaction weights. AUTHORED is absent:
// creating content is not an endorsement of anyone.
func TrustWeights() WeightTable {
	return WeightTable{
		models.EdgeTypeLiked:    1.0,
		models.EdgeTypeReplied:  0.5,
		models.EdgeTypeRecasted: 2.0,
	}
}

// EngagementWeights returns the weights used by the engagement graphs.
func EngagementWeights() WeightTable {
	return WeightTable{
		models.EdgeTypeLiked:    1.0,
		models.EdgeTypeReplied:  2.0,
		models.EdgeTypeRecasted: 3.0,
	}
}
