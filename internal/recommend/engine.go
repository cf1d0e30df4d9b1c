// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/graph"
)

// Engine computes curator lists and artist recommendations from a Snapshot.
// It holds no per-snapshot state and is safe for concurrent use.
type Engine struct {
	config *Config
	ranker *centrality.Engine
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil cfg uses
// DefaultConfig and a nil ranker uses default centrality options.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, ranker *centrality.Engine, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if ranker == nil {
		ranker = centrality.New(centrality.DefaultOptions(), logger)
	}

	return &Engine{
		config: cfg.Clone(),
		ranker: ranker,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ranking returns the snapshot's Ranking, or a memoizing Ranking over the
// social graph when the snapshot has none.
func (e *Engine) ranking(s *Snapshot) Ranking {
	if s.Ranking != nil {
		return s.Ranking
	}
	return NewRanking(e.ranker, s.Social, centrality.AlgorithmLouvain)
}

// memoRanking computes social graph rankings once, on first use.
type memoRanking struct {
	ranker    *centrality.Engine
	social    *graph.Graph
	algorithm centrality.Algorithm

	prOnce      sync.Once
	pagerank    map[string]float64
	commOnce    sync.Once
	communities map[string]int
}

// NewRanking returns a Ranking of social that computes PageRank and
// communities lazily and at most once. It is safe for concurrent use.
func NewRanking(ranker *centrality.Engine, social *graph.Graph, algorithm centrality.Algorithm) Ranking {
	return &memoRanking{ranker: ranker, social: social, algorithm: algorithm}
}

func (r *memoRanking) PageRank() map[string]float64 {
	r.prOnce.Do(func() {
		if r.social == nil {
			r.pagerank = map[string]float64{}
			return
		}
		r.pagerank = r.ranker.PageRank(r.social)
	})
	return r.pagerank
}

func (r *memoRanking) Communities() map[string]int {
	r.commOnce.Do(func() {
		if r.social == nil {
			r.communities = map[string]int{}
			return
		}
		r.communities = r.ranker.Communities(r.social, r.algorithm)
	})
	return r.communities
}
