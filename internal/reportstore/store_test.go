// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package reportstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/config"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	store, err := Open(config.StoreConfig{InMemory: true, TTL: ttl})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func testReport(runID string, completed time.Time) *analysis.Report {
	return &analysis.Report{
		RunID:       runID,
		StartedAt:   completed.Add(-time.Minute),
		CompletedAt: completed,
		DurationMS:  60000,
		Counts:      analysis.Counts{Users: 3, Edges: 7, Posts: 3, Engagements: 4, MusicRecords: 2},
		Communities: analysis.CommunityReport{Algorithm: "louvain", Count: 2, Sizes: []int{2, 1}},
		Users: []analysis.UserResult{
			{UserID: 1, DisplayName: "alice"},
		},
		ColdStart: analysis.ColdStartReport{Users: []int64{3}, Count: 1},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)
	ctx := context.Background()

	if err := store.Save(ctx, testReport("run-1", baseTime)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", got.RunID)
	}
	if !got.CompletedAt.Equal(baseTime) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, baseTime)
	}
	if got.Counts.Edges != 7 {
		t.Errorf("Counts.Edges = %d, want 7", got.Counts.Edges)
	}
	if u, err := got.User(1); err != nil || u.DisplayName != "alice" {
		t.Errorf("User(1) = %+v, %v, want alice", u, err)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Latest(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() on empty store error = %v, want ErrNotFound", err)
	}
}

func TestStore_Latest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		saves  []*analysis.Report
		wantID string
	}{
		{
			name:   "single run",
			saves:  []*analysis.Report{testReport("a", baseTime)},
			wantID: "a",
		},
		{
			name:   "newer run advances pointer",
			saves:  []*analysis.Report{testReport("a", baseTime), testReport("b", baseTime.Add(time.Hour))},
			wantID: "b",
		},
		{
			name:   "older run saved late keeps pointer",
			saves:  []*analysis.Report{testReport("b", baseTime.Add(time.Hour)), testReport("a", baseTime)},
			wantID: "b",
		},
		{
			name:   "equal completion time takes last save",
			saves:  []*analysis.Report{testReport("a", baseTime), testReport("b", baseTime)},
			wantID: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newTestStore(t, 0)
			ctx := context.Background()

			for _, r := range tt.saves {
				if err := store.Save(ctx, r); err != nil {
					t.Fatalf("Save(%s) error = %v", r.RunID, err)
				}
			}
			got, err := store.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if got.RunID != tt.wantID {
				t.Errorf("Latest().RunID = %q, want %q", got.RunID, tt.wantID)
			}
		})
	}
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)

	if err := store.Save(context.Background(), nil); err == nil {
		t.Error("Save(nil) error = nil, want error")
	}
	if err := store.Save(context.Background(), &analysis.Report{}); err == nil {
		t.Error("Save(no run id) error = nil, want error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Save(ctx, testReport("x", baseTime)); !errors.Is(err, context.Canceled) {
		t.Errorf("Save(canceled) error = %v, want context.Canceled", err)
	}
}

func TestStore_List(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)
	ctx := context.Background()

	for i, id := range []string{"r1", "r2", "r3"} {
		if err := store.Save(ctx, testReport(id, baseTime.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"r3", "r2", "r1"}
	if len(all) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].RunID != id {
			t.Errorf("List()[%d].RunID = %q, want %q", i, all[i].RunID, id)
		}
	}
	if all[0].Communities != 2 || all[0].ColdStart != 1 {
		t.Errorf("summary = %+v, want 2 communities and 1 cold-start user", all[0])
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(limited) != 2 || limited[0].RunID != "r3" {
		t.Errorf("List(2) = %+v, want r3 and r2", limited)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)
	ctx := context.Background()

	if err := store.Save(ctx, testReport("a", baseTime)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, testReport("b", baseTime.Add(time.Hour))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete(a) error = %v", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(a) after delete error = %v, want ErrNotFound", err)
	}
	if latest, err := store.Latest(ctx); err != nil || latest.RunID != "b" {
		t.Errorf("Latest() = %v, %v, want b", latest, err)
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete(b) error = %v", err)
	}
	if _, err := store.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() after deleting latest error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "never-saved"); err != nil {
		t.Errorf("Delete(unknown) error = %v, want nil", err)
	}
}

func TestStore_TTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ttl         time.Duration
		wantExpires bool
	}{
		{name: "with ttl", ttl: time.Hour, wantExpires: true},
		{name: "no ttl", ttl: 0, wantExpires: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newTestStore(t, tt.ttl)
			if err := store.Save(context.Background(), testReport("a", baseTime)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			err := store.db.View(func(txn *badger.Txn) error {
				for _, key := range []string{reportKeyPrefix + "a", summaryKeyPrefix + "a", latestKey} {
					item, err := txn.Get([]byte(key))
					if err != nil {
						return err
					}
					if got := item.ExpiresAt() > 0; got != tt.wantExpires {
						t.Errorf("%s expires = %v, want %v", key, got, tt.wantExpires)
					}
				}
				return nil
			})
			if err != nil {
				t.Fatalf("View() error = %v", err)
			}
		})
	}
}

func TestOpen_OnDisk(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "reports")

	store, err := Open(config.StoreConfig{Path: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Save(context.Background(), testReport("disk", baseTime)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(config.StoreConfig{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() after reopen error = %v", err)
	}
	if got.RunID != "disk" {
		t.Errorf("RunID = %q, want disk", got.RunID)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(config.StoreConfig{}); err == nil {
		t.Error("Open(no path) error = nil, want error")
	}
}

func TestStore_ReportCache(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 0)
	ctx := context.Background()

	saved := testReport("cached", baseTime)
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, err := store.Get(ctx, "cached"); err != nil || got != saved {
		t.Errorf("Get() = %p, %v, want the saved report %p", got, err, saved)
	}

	// evict the entry so the next read decodes from badger and refills the cache
	store.reports.Remove("cached")
	first, err := store.Get(ctx, "cached")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first == saved {
		t.Error("Get() after eviction returned the saved pointer, want a decoded copy")
	}
	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest != first {
		t.Error("Latest() did not return the cached report")
	}
	if hits, _, _ := store.reports.Stats(); hits < 2 {
		t.Errorf("cache hits = %d, want at least 2", hits)
	}

	if err := store.Delete(ctx, "cached"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := store.reports.Get("cached"); ok {
		t.Error("cache still holds the deleted report")
	}
	if _, err := store.Get(ctx, "cached"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
