// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package models defines data structures for the Curatorgraph application.

This package contains the raw records consumed by the graph builders and the
API response wrapper shared by all HTTP endpoints. It serves as the single
source of truth for record definitions that cross package boundaries.

Key Components:

  - UserNode: A user of the music-sharing network (id, display name, avatar)
  - InteractionEdge: One typed interaction between two users on a cast
  - MusicRecord: A music attribution (user, artist, cast) from the library table
  - EdgeType: AUTHORED, LIKED, RECASTED, REPLIED
  - EdgeQuery: Filter for fetching interaction edges from a data source
  - APIResponse: Standard response wrapper

Edge Semantics:

AUTHORED edges record content creation. Depending on the data source they are
self-referential (source = target = author) or point at the content owner;
graph builders decide per graph type whether to include them. Any edge whose
source equals its target is a self-loop and never contributes to a social,
trust or engagement graph.

Usage Example:

	import "github.com/tomtom215/curatorgraph/internal/models"

	edge := models.InteractionEdge{
	    SourceUserID: 1,
	    TargetUserID: 2,
	    EdgeType:     models.EdgeTypeLiked,
	    CastID:       "0xabc",
	    CreatedAt:    time.Now(),
	}

Thread Safety:

All models are plain data structures without internal synchronization.
Records handed to graph builders are treated as read-only.
*/
package models
