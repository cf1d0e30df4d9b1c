// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/curatorgraph/internal/models"
)

func TestFetchUserNodes(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	users, err := db.FetchUserNodes(ctx, 0)
	if err != nil {
		t.Fatalf("FetchUserNodes() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len(users) = %d, want 3", len(users))
	}
	if users[0].NodeID != 1 || users[0].DisplayName != "alice" || users[0].AvatarURL == "" {
		t.Errorf("users[0] = %+v, want alice with avatar", users[0])
	}
	if users[2].DisplayName != "" {
		t.Errorf("users[2].DisplayName = %q, want empty", users[2].DisplayName)
	}

	limited, err := db.FetchUserNodes(ctx, 2)
	if err != nil {
		t.Fatalf("FetchUserNodes(limit 2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestFetchUserNodes_Empty(t *testing.T) {
	db := setupTestDB(t)

	users, err := db.FetchUserNodes(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchUserNodes() error = %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("FetchUserNodes() = %v, want empty non-nil slice", users)
	}
}

func TestFetchUserNode(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	u, err := db.FetchUserNode(ctx, 2)
	if err != nil {
		t.Fatalf("FetchUserNode(2) error = %v", err)
	}
	if u.DisplayName != "bob" {
		t.Errorf("DisplayName = %q, want bob", u.DisplayName)
	}

	if _, err := db.FetchUserNode(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchUserNode(99) error = %v, want ErrNotFound", err)
	}
}

func TestInsertUserNodes_Upsert(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	if err := db.InsertUserNodes(ctx, []models.UserNode{{NodeID: 2, DisplayName: "robert"}}); err != nil {
		t.Fatalf("InsertUserNodes() error = %v", err)
	}
	u, err := db.FetchUserNode(ctx, 2)
	if err != nil {
		t.Fatalf("FetchUserNode() error = %v", err)
	}
	if u.DisplayName != "robert" {
		t.Errorf("DisplayName = %q, want robert", u.DisplayName)
	}
}

func TestInsertInteractionEdges_RejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)

	err := db.InsertInteractionEdges(context.Background(), []models.InteractionEdge{
		{SourceUserID: 1, TargetUserID: 2, EdgeType: models.EdgeTypeUnknown, CreatedAt: testNow},
	})
	if err == nil {
		t.Error("InsertInteractionEdges() with unknown type error = nil, want error")
	}
}

func TestFetchInteractionEdges(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     models.EdgeQuery
		wantCount int
	}{
		{name: "all edges", query: models.EdgeQuery{}, wantCount: 7},
		{
			name:      "authored only",
			query:     models.EdgeQuery{EdgeTypes: []models.EdgeType{models.EdgeTypeAuthored}},
			wantCount: 3,
		},
		{
			name:      "last 30 days",
			query:     models.EdgeQuery{Start: testNow.Add(-30 * 24 * time.Hour), End: testNow},
			wantCount: 5,
		},
		{
			name:      "open end",
			query:     models.EdgeQuery{Start: testNow.Add(-2 * time.Hour)},
			wantCount: 1,
		},
		{
			name:      "cast filter",
			query:     models.EdgeQuery{CastIDs: []string{"c1", "c3"}},
			wantCount: 4,
		},
		{
			name:      "engagements on casts",
			query:     models.EngagementsQuery([]string{"c1", "c2"}, 0),
			wantCount: 2,
		},
		{
			name:      "posts in period",
			query:     models.PostsQuery(testNow.Add(-3*24*time.Hour), testNow, 0),
			wantCount: 2,
		},
		{name: "limit", query: models.EdgeQuery{Limit: 2}, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := db.FetchInteractionEdges(ctx, tt.query)
			if err != nil {
				t.Fatalf("FetchInteractionEdges() error = %v", err)
			}
			if len(edges) != tt.wantCount {
				t.Errorf("len(edges) = %d, want %d", len(edges), tt.wantCount)
			}
		})
	}
}

func TestFetchInteractionEdges_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	edges, err := db.FetchInteractionEdges(context.Background(), models.EdgeQuery{
		EdgeTypes: []models.EdgeType{models.EdgeTypeReplied},
	})
	if err != nil {
		t.Fatalf("FetchInteractionEdges() error = %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.SourceUserID != 1 || e.TargetUserID != 2 || e.CastID != "c2" {
		t.Errorf("edge = %+v, want 1->2 on c2", e)
	}
	if !e.CreatedAt.Equal(testNow.Add(-23 * time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, testNow.Add(-23*time.Hour))
	}

	// Edges without a cast come back with an empty cast id
	noCast, err := db.FetchInteractionEdges(context.Background(), models.EdgeQuery{Start: testNow.Add(-2 * time.Hour)})
	if err != nil {
		t.Fatalf("FetchInteractionEdges() error = %v", err)
	}
	if len(noCast) != 1 || noCast[0].CastID != "" {
		t.Errorf("noCast = %+v, want one edge with empty cast id", noCast)
	}
}

func TestFetchEngagementsOnCasts_Empty(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	edges, err := db.FetchEngagementsOnCasts(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("FetchEngagementsOnCasts() error = %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("len(edges) = %d, want 0 for no casts", len(edges))
	}

	posts, err := db.FetchPostsInPeriod(context.Background(), time.Time{}, time.Time{}, 0)
	if err != nil {
		t.Fatalf("FetchPostsInPeriod() error = %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("len(posts) = %d, want 3", len(posts))
	}
}

func TestFetchMusicRecords(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	records, err := db.FetchMusicRecords(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchMusicRecords() error = %v", err)
	}
	// The record without an artist is skipped
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	for _, r := range records {
		if r.UserID != 2 || r.ArtistName == "" {
			t.Errorf("record = %+v, want a user 2 record with an artist", r)
		}
	}
}

func TestFetchUserPostCounts(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	counts, err := db.FetchUserPostCounts(ctx, []int64{1, 2, 3, 42})
	if err != nil {
		t.Fatalf("FetchUserPostCounts() error = %v", err)
	}
	want := map[int64]int{1: 0, 2: 2, 3: 1, 42: 0}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("counts[%d] = %d, want %d", id, counts[id], n)
		}
	}

	all, err := db.FetchUserPostCounts(ctx, nil)
	if err != nil {
		t.Fatalf("FetchUserPostCounts(nil) error = %v", err)
	}
	if len(all) != 2 || all[2] != 2 || all[3] != 1 {
		t.Errorf("FetchUserPostCounts(nil) = %v, want {2:2 3:1}", all)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := db.FetchUserNodes(ctx, 0); err == nil {
		t.Error("FetchUserNodes() with canceled context error = nil, want error")
	}
}

func TestQueryBuilder(t *testing.T) {
	t.Parallel()

	qb := newQueryBuilder("SELECT * FROM edges")
	addInFilter(qb, "edge_type", []string{"LIKED", "REPLIED"})
	qb.addDateRangeFilter("created_at", testNow, time.Time{})
	addInFilter(qb, "cast_id", []string(nil))
	query, args := qb.build("ORDER BY created_at", 10)

	want := "SELECT * FROM edges WHERE edge_type IN (?,?) AND created_at >= ? ORDER BY created_at LIMIT ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if len(args) != 4 || args[3] != 10 {
		t.Errorf("args = %v, want 4 args ending in limit 10", args)
	}
}
