// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"context"
	"errors"

	"github.com/tomtom215/curatorgraph/internal/models"
)

// ErrNoUsers is returned by Pipeline.Run when the data source has no users.
var ErrNoUsers = errors.New("no users available for analysis")

// DataSource supplies the raw records of a run. Empty results are empty
// slices with a nil error.
type DataSource interface {
	// FetchUserNodes returns up to limit users. A limit of zero returns all.
	FetchUserNodes(ctx context.Context, limit int) ([]models.UserNode, error)

	// FetchInteractionEdges returns the interaction edges matching q.
	FetchInteractionEdges(ctx context.Context, q models.EdgeQuery) ([]models.InteractionEdge, error)

	// FetchMusicRecords returns up to limit music records. A limit of zero
	// returns all.
	FetchMusicRecords(ctx context.Context, limit int) ([]models.MusicRecord, error)

	// FetchUserPostCounts returns the authored post count of each user.
	// Users without posts may be missing from the map.
	FetchUserPostCounts(ctx context.Context, userIDs []int64) (map[int64]int, error)
}
