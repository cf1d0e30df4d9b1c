// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatorgraph/internal/models"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

func newTestPipeline(t *testing.T, source DataSource, mutate func(*Options)) *Pipeline {
	t.Helper()

	opts := DefaultOptions()
	opts.Workers = 2
	if mutate != nil {
		mutate(&opts)
	}

	p, err := NewPipeline(source, nil, nil, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	p.now = func() time.Time { return testNow }
	p.newRunID = func() string { return "run-test" }
	return p
}

func TestNewPipeline_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewPipeline(nil, nil, nil, DefaultOptions(), zerolog.Nop()); err == nil {
		t.Error("NewPipeline(nil source) error = nil, want error")
	}

	opts := DefaultOptions()
	opts.Workers = 0
	if _, err := NewPipeline(newScenarioSource(), nil, nil, opts, zerolog.Nop()); err == nil {
		t.Error("NewPipeline(workers=0) error = nil, want error")
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	source := newScenarioSource()
	report, session, err := newTestPipeline(t, source, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if session == nil {
		t.Fatal("Run() session = nil")
	}

	if report.RunID != "run-test" {
		t.Errorf("RunID = %q, want run-test", report.RunID)
	}
	if !report.Window.End.Equal(testNow) || !report.Window.Start.Equal(testNow.Add(-30*24*time.Hour)) {
		t.Errorf("Window = %+v, want last 30 days", report.Window)
	}

	wantCounts := Counts{Users: 4, Edges: 7, Posts: 4, Engagements: 4, MusicRecords: 5}
	if report.Counts != wantCounts {
		t.Errorf("Counts = %+v, want %+v", report.Counts, wantCounts)
	}

	if len(report.Graphs) != len(GraphNames) {
		t.Fatalf("len(Graphs) = %d, want %d", len(report.Graphs), len(GraphNames))
	}
	wantEdges := map[string]int{
		GraphSocial:              4,
		GraphTrust:               3,
		GraphEngagementIntensity: 3,
	}
	for i, s := range report.Graphs {
		if s.Name != GraphNames[i] {
			t.Errorf("Graphs[%d].Name = %q, want %q", i, s.Name, GraphNames[i])
		}
		if want, ok := wantEdges[s.Name]; ok && s.Edges != want {
			t.Errorf("%s edges = %d, want %d", s.Name, s.Edges, want)
		}
	}

	if len(report.TopPageRank) != 4 {
		t.Errorf("len(TopPageRank) = %d, want 4", len(report.TopPageRank))
	}
	if report.TopPageRank[0].Key != "1" {
		t.Errorf("TopPageRank[0] = %q, want 1", report.TopPageRank[0].Key)
	}
	if _, ok := report.Centrality[GraphTrust]; !ok {
		t.Error("Centrality missing trust highlights")
	}
	if len(report.TopArtists) != 3 {
		t.Errorf("len(TopArtists) = %d, want 3", len(report.TopArtists))
	}

	if report.Mutual.Symmetry.Total != 1 {
		t.Errorf("mutual pairs = %d, want 1", report.Mutual.Symmetry.Total)
	}

	if len(report.Users) != 4 {
		t.Fatalf("len(Users) = %d, want 4", len(report.Users))
	}
	wantSources := []recommend.CuratorSource{
		recommend.SourceTrust,
		recommend.SourceTrust,
		recommend.SourcePageRankFallback,
		recommend.SourcePageRankFallback,
	}
	for i, u := range report.Users {
		if u.UserID != int64(i+1) {
			t.Errorf("Users[%d].UserID = %d, want %d", i, u.UserID, i+1)
		}
		if u.Curators.Source != wantSources[i] {
			t.Errorf("user %d source = %q, want %q", u.UserID, u.Curators.Source, wantSources[i])
		}
	}
	if report.Users[3].DisplayName != "User_4" {
		t.Errorf("Users[3].DisplayName = %q, want User_4", report.Users[3].DisplayName)
	}

	if !slices.Equal(report.ColdStart.Users, []int64{3, 4}) {
		t.Errorf("ColdStart.Users = %v, want [3 4]", report.ColdStart.Users)
	}
	if report.ColdStart.Coverage.Users != 4 {
		t.Errorf("Coverage.Users = %d, want 4", report.ColdStart.Coverage.Users)
	}
	if !report.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", report.CompletedAt, testNow)
	}
}

func TestPipeline_Run_Queries(t *testing.T) {
	t.Parallel()

	source := newScenarioSource()
	if _, _, err := newTestPipeline(t, source, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var engagement *models.EdgeQuery
	for _, q := range source.recorded() {
		if len(q.CastIDs) > 0 {
			engagement = &q
		}
	}
	if engagement == nil {
		t.Fatal("no engagement query issued")
	}
	if engagement.HasDateRange() {
		t.Error("engagement query has a date range, want none")
	}
	if !slices.Equal(engagement.CastIDs, []string{"c1", "c2", "c3", "c5"}) {
		t.Errorf("CastIDs = %v, want [c1 c2 c3 c5]", engagement.CastIDs)
	}
	if slices.Contains(engagement.EdgeTypes, models.EdgeTypeAuthored) {
		t.Error("engagement query includes AUTHORED")
	}
}

func TestPipeline_Run_Unbounded(t *testing.T) {
	t.Parallel()

	source := newScenarioSource()
	report, _, err := newTestPipeline(t, source, func(o *Options) { o.Window = 0 }).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Counts.Edges != 8 {
		t.Errorf("Edges = %d, want 8", report.Counts.Edges)
	}
	if !report.Window.Start.IsZero() || !report.Window.End.IsZero() {
		t.Errorf("Window = %+v, want zero", report.Window)
	}
}

func TestPipeline_Run_MaxUsers(t *testing.T) {
	t.Parallel()

	report, _, err := newTestPipeline(t, newScenarioSource(), func(o *Options) {
		o.MaxUsers = 2
		o.Workers = 1
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Users) != 2 {
		t.Errorf("len(Users) = %d, want 2", len(report.Users))
	}
	if report.ColdStart.Coverage.Users != 2 {
		t.Errorf("Coverage.Users = %d, want 2", report.ColdStart.Coverage.Users)
	}
	// Cold-start users are taken from the whole social graph.
	if report.ColdStart.Count != 2 {
		t.Errorf("ColdStart.Count = %d, want 2", report.ColdStart.Count)
	}
}

func TestPipeline_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*fakeSource)
		want   error
	}{
		{
			name:   "no users",
			mutate: func(f *fakeSource) { f.users = nil },
			want:   ErrNoUsers,
		},
		{
			name:   "users fetch fails",
			mutate: func(f *fakeSource) { f.usersErr = errSourceDown },
			want:   errSourceDown,
		},
		{
			name:   "edge fetch fails",
			mutate: func(f *fakeSource) { f.edgesErr = errSourceDown },
			want:   errSourceDown,
		},
		{
			name:   "music fetch fails",
			mutate: func(f *fakeSource) { f.musicErr = errSourceDown },
			want:   errSourceDown,
		},
		{
			name:   "post count fetch fails",
			mutate: func(f *fakeSource) { f.countErr = errSourceDown },
			want:   errSourceDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := newScenarioSource()
			tt.mutate(source)

			report, session, err := newTestPipeline(t, source, nil).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
			if report != nil || session != nil {
				t.Error("Run() returned results alongside an error")
			}
		})
	}
}

func TestPipeline_Run_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestPipeline(t, newScenarioSource(), nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPipeline_Run_Deterministic(t *testing.T) {
	t.Parallel()

	first, _, err := newTestPipeline(t, newScenarioSource(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, _, err := newTestPipeline(t, newScenarioSource(), func(o *Options) { o.Workers = 8 }).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := range first.Users {
		a, b := first.Users[i], second.Users[i]
		if a.UserID != b.UserID || a.Curators.Source != b.Curators.Source {
			t.Errorf("user %d differs between runs", a.UserID)
		}
		if len(a.Curators.Curators) != len(b.Curators.Curators) {
			t.Errorf("user %d curator count %d vs %d", a.UserID, len(a.Curators.Curators), len(b.Curators.Curators))
		}
	}
}

func TestCastIDsOf(t *testing.T) {
	t.Parallel()

	posts := []models.InteractionEdge{
		{CastID: "b"},
		{CastID: ""},
		{CastID: "a"},
		{CastID: "b"},
	}
	if got := castIDsOf(posts); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("castIDsOf() = %v, want [b a]", got)
	}
	if got := castIDsOf(nil); got != nil {
		t.Errorf("castIDsOf(nil) = %v, want nil", got)
	}
}
