// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/curatorgraph/internal/models"
)

var errSourceDown = errors.New("source down")

// fakeSource is an in-memory DataSource that records edge queries.
type fakeSource struct {
	users  []models.UserNode
	edges  []models.InteractionEdge
	music  []models.MusicRecord
	counts map[int64]int

	usersErr error
	edgesErr error
	musicErr error
	countErr error

	mu      sync.Mutex
	queries []models.EdgeQuery
}

func (f *fakeSource) FetchUserNodes(_ context.Context, limit int) ([]models.UserNode, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	if limit > 0 && len(f.users) > limit {
		return f.users[:limit], nil
	}
	return f.users, nil
}

func (f *fakeSource) FetchInteractionEdges(_ context.Context, q models.EdgeQuery) ([]models.InteractionEdge, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.edgesErr != nil {
		return nil, f.edgesErr
	}

	out := make([]models.InteractionEdge, 0)
	for _, e := range f.edges {
		if len(q.EdgeTypes) > 0 && !slices.Contains(q.EdgeTypes, e.EdgeType) {
			continue
		}
		if len(q.CastIDs) > 0 && !slices.Contains(q.CastIDs, e.CastID) {
			continue
		}
		if !q.Start.IsZero() && e.CreatedAt.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && e.CreatedAt.After(q.End) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSource) FetchMusicRecords(_ context.Context, limit int) ([]models.MusicRecord, error) {
	if f.musicErr != nil {
		return nil, f.musicErr
	}
	if limit > 0 && len(f.music) > limit {
		return f.music[:limit], nil
	}
	return f.music, nil
}

func (f *fakeSource) FetchUserPostCounts(_ context.Context, userIDs []int64) (map[int64]int, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	out := make(map[int64]int, len(userIDs))
	for _, id := range userIDs {
		if n, ok := f.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeSource) recorded() []models.EdgeQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queries)
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func edge(from, to int64, typ models.EdgeType, cast string, age time.Duration) models.InteractionEdge {
	return models.InteractionEdge{
		SourceUserID: from,
		TargetUserID: to,
		EdgeType:     typ,
		CastID:       cast,
		CreatedAt:    testNow.Add(-age),
	}
}

// newScenarioSource returns four users where alice and bob trust each other,
// alice also trusts carol, and user 4 has only authored a post.
func newScenarioSource() *fakeSource {
	day := 24 * time.Hour
	return &fakeSource{
		users: []models.UserNode{
			{NodeID: 1, DisplayName: "alice"},
			{NodeID: 2, DisplayName: "bob"},
			{NodeID: 3, DisplayName: "carol"},
			{NodeID: 4},
		},
		edges: []models.InteractionEdge{
			edge(2, 2, models.EdgeTypeAuthored, "c1", day),
			edge(2, 2, models.EdgeTypeAuthored, "c2", day),
			edge(3, 3, models.EdgeTypeAuthored, "c3", day),
			edge(1, 2, models.EdgeTypeLiked, "c1", day),
			edge(2, 1, models.EdgeTypeLiked, "c5", day),
			edge(1, 3, models.EdgeTypeLiked, "c3", day),
			edge(4, 1, models.EdgeTypeAuthored, "c5", day),
			// Outside the default 30 day window.
			edge(4, 3, models.EdgeTypeLiked, "c3", 90*day),
		},
		music: []models.MusicRecord{
			{UserID: 1, ArtistName: "Burial", CastID: "c5"},
			{UserID: 2, ArtistName: "Boards of Canada", CastID: "c1"},
			{UserID: 2, ArtistName: "Aphex Twin", CastID: "c2"},
			{UserID: 3, ArtistName: "Aphex Twin", CastID: "c3"},
			{UserID: 3, ArtistName: "Burial", CastID: "c4"},
		},
		counts: map[int64]int{1: 10, 2: 5, 3: 20},
	}
}
