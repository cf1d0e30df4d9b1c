// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package reportstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/cache"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	reportKeyPrefix  = "report:"
	summaryKeyPrefix = "summary:"
	latestKey        = "latest"
)

// cacheCapacity is the number of decoded reports kept in memory.
const cacheCapacity = 16

// ErrNotFound is returned when a run is unknown or has expired.
var ErrNotFound = errors.New("report not found")

// RunSummary describes a stored run without its per-user results.
type RunSummary struct {
	RunID       string          `json:"run_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	DurationMS  int64           `json:"duration_ms"`
	Counts      analysis.Counts `json:"counts"`
	Communities int             `json:"communities"`
	ColdStart   int             `json:"cold_start_users"`
}

// latestPointer names the newest completed run.
type latestPointer struct {
	RunID       string    `json:"run_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Store is a BadgerDB-backed report store. Decoded reports are cached;
// callers must not modify a returned report.
type Store struct {
	db      *badger.DB
	ttl     time.Duration
	reports *cache.LRU[string, *analysis.Report]
}

// Open opens the store described by cfg. An in-memory store ignores cfg.Path.
func Open(cfg config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("report store path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create report store directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for reports: %w", err)
	}
	return New(db, cfg.TTL), nil
}

// New wraps an open BadgerDB. A zero ttl keeps reports forever.
func New(db *badger.DB, ttl time.Duration) *Store {
	cacheTTL := cache.DefaultTTL
	if ttl > 0 && ttl < cacheTTL {
		cacheTTL = ttl
	}
	return &Store{
		db:      db,
		ttl:     ttl,
		reports: cache.NewLRU[string, *analysis.Report](cacheCapacity, cacheTTL),
	}
}

// Close closes the underlying BadgerDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r and advances the latest pointer unless a newer run is
// already recorded.
func (s *Store) Save(ctx context.Context, r *analysis.Report) error {
	if r == nil || r.RunID == "" {
		metrics.RecordReportStoreOperation("save", "error")
		return fmt.Errorf("report run id is required")
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordReportStoreOperation("save", "error")
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		metrics.RecordReportStoreOperation("save", "error")
		return fmt.Errorf("marshal report: %w", err)
	}
	summary, err := json.Marshal(summarize(r))
	if err != nil {
		metrics.RecordReportStoreOperation("save", "error")
		return fmt.Errorf("marshal summary: %w", err)
	}
	pointer, err := json.Marshal(latestPointer{RunID: r.RunID, CompletedAt: r.CompletedAt})
	if err != nil {
		metrics.RecordReportStoreOperation("save", "error")
		return fmt.Errorf("marshal latest pointer: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(s.entry(reportKeyPrefix+r.RunID, data)); err != nil {
			return fmt.Errorf("set report: %w", err)
		}
		if err := txn.SetEntry(s.entry(summaryKeyPrefix+r.RunID, summary)); err != nil {
			return fmt.Errorf("set summary: %w", err)
		}

		current, err := readLatest(txn)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err == nil && current.RunID != r.RunID && current.CompletedAt.After(r.CompletedAt) {
			return nil
		}
		if err := txn.SetEntry(s.entry(latestKey, pointer)); err != nil {
			return fmt.Errorf("set latest pointer: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.RecordReportStoreOperation("save", "error")
		return err
	}

	s.reports.Add(r.RunID, r)
	metrics.RecordReportStoreOperation("save", "success")
	return nil
}

// Get returns the report of runID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, runID string) (*analysis.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.report("get", runID)
}

// Latest returns the newest completed report, or ErrNotFound when the store
// is empty or the latest run has expired.
func (s *Store) Latest(ctx context.Context) (*analysis.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pointer latestPointer
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		pointer, err = readLatest(txn)
		return err
	})
	if err != nil {
		return s.finish("latest", nil, err)
	}
	return s.report("latest", pointer.RunID)
}

// report returns the report of runID from the cache or BadgerDB.
func (s *Store) report(operation, runID string) (*analysis.Report, error) {
	if r, ok := s.reports.Get(runID); ok {
		metrics.RecordReportStoreOperation(operation, "success")
		return r, nil
	}

	var report analysis.Report
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, reportKeyPrefix+runID, &report)
	})
	if err == nil {
		s.reports.Add(runID, &report)
	}
	return s.finish(operation, &report, err)
}

// List returns up to limit run summaries, newest first. A limit of zero
// returns all.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries := make([]RunSummary, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(summaryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var summary RunSummary
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &summary)
			})
			if err != nil {
				return fmt.Errorf("decode summary %s: %w", it.Item().Key(), err)
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		metrics.RecordReportStoreOperation("list", "error")
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].CompletedAt.Equal(summaries[j].CompletedAt) {
			return summaries[i].CompletedAt.After(summaries[j].CompletedAt)
		}
		return summaries[i].RunID < summaries[j].RunID
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	metrics.RecordReportStoreOperation("list", "success")
	return summaries, nil
}

// Delete removes the report of runID. Deleting the latest run clears the
// latest pointer. Unknown runs are not an error.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.reports.Remove(runID)
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{reportKeyPrefix + runID, summaryKeyPrefix + runID} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}

		pointer, err := readLatest(txn)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if pointer.RunID == runID {
			if err := txn.Delete([]byte(latestKey)); err != nil {
				return fmt.Errorf("delete latest pointer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordReportStoreOperation("delete", "error")
		return err
	}

	metrics.RecordReportStoreOperation("delete", "success")
	return nil
}

// entry builds a badger entry carrying the store TTL.
func (s *Store) entry(key string, value []byte) *badger.Entry {
	e := badger.NewEntry([]byte(key), value)
	if s.ttl > 0 {
		e = e.WithTTL(s.ttl)
	}
	return e
}

// finish records the outcome of a read and maps a missing key to ErrNotFound.
func (s *Store) finish(operation string, report *analysis.Report, err error) (*analysis.Report, error) {
	switch {
	case err == nil:
		metrics.RecordReportStoreOperation(operation, "success")
		return report, nil
	case errors.Is(err, ErrNotFound):
		metrics.RecordReportStoreOperation(operation, "not_found")
		return nil, err
	default:
		metrics.RecordReportStoreOperation(operation, "error")
		return nil, err
	}
}

func readLatest(txn *badger.Txn) (latestPointer, error) {
	var pointer latestPointer
	err := getJSON(txn, latestKey, &pointer)
	return pointer, err
}

// getJSON decodes the value at key into v.
func getJSON(txn *badger.Txn, key string, v interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func summarize(r *analysis.Report) RunSummary {
	return RunSummary{
		RunID:       r.RunID,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		DurationMS:  r.DurationMS,
		Counts:      r.Counts,
		Communities: r.Communities.Count,
		ColdStart:   r.ColdStart.Count,
	}
}
