// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package centrality

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Options configures the centrality engine.
type Options struct {
	// Alpha is the PageRank damping factor.
	// Default: 0.85.
	Alpha float64 `json:"alpha" koanf:"alpha" validate:"gt=0,lt=1"`

	// Tolerance is the PageRank convergence tolerance on the 2-norm of the
	// difference between iterations.
	// Default: 1e-8.
	Tolerance float64 `json:"tolerance" koanf:"tolerance" validate:"gt=0"`

	// BetweennessExactThreshold is the node count from which betweenness is
	// approximated by sampling.
	// Default: 500.
	BetweennessExactThreshold int `json:"betweenness_exact_threshold" koanf:"betweenness_exact_threshold" validate:"gte=3"`

	// BetweennessSamples is the number of source nodes sampled when
	// approximating betweenness.
	// Default: 100.
	BetweennessSamples int `json:"betweenness_samples" koanf:"betweenness_samples" validate:"gte=1"`

	// EigenvectorMaxIter caps eigenvector power iteration.
	// Default: 1000.
	EigenvectorMaxIter int `json:"eigenvector_max_iter" koanf:"eigenvector_max_iter" validate:"gte=1"`

	// EigenvectorTolerance is the per-node convergence tolerance of the
	// eigenvector power iteration.
	// Default: 1e-6.
	EigenvectorTolerance float64 `json:"eigenvector_tolerance" koanf:"eigenvector_tolerance" validate:"gt=0"`

	// EigenvectorDenseMaxNodes bounds the dense eigen decomposition fallback.
	// Larger graphs skip straight to degree centrality.
	// Default: 2000.
	EigenvectorDenseMaxNodes int `json:"eigenvector_dense_max_nodes" koanf:"eigenvector_dense_max_nodes" validate:"gte=0"`

	// Resolution is the modularity resolution for community detection.
	// Default: 1.0.
	Resolution float64 `json:"resolution" koanf:"resolution" validate:"gt=0"`

	// Seed seeds Louvain and betweenness sampling.
	// Default: 42.
	Seed uint64 `json:"seed" koanf:"seed"`
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		Alpha:                     0.85,
		Tolerance:                 1e-8,
		BetweennessExactThreshold: 500,
		BetweennessSamples:        100,
		EigenvectorMaxIter:        1000,
		EigenvectorTolerance:      1e-6,
		EigenvectorDenseMaxNodes:  2000,
		Resolution:                1.0,
		Seed:                      42,
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %f", o.Alpha)
	}
	if o.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", o.Tolerance)
	}
	if o.BetweennessExactThreshold < 3 {
		return fmt.Errorf("betweenness_exact_threshold must be at least 3, got %d", o.BetweennessExactThreshold)
	}
	if o.BetweennessSamples < 1 {
		return fmt.Errorf("betweenness_samples must be at least 1, got %d", o.BetweennessSamples)
	}
	if o.EigenvectorMaxIter < 1 {
		return fmt.Errorf("eigenvector_max_iter must be at least 1, got %d", o.EigenvectorMaxIter)
	}
	if o.EigenvectorTolerance <= 0 {
		return fmt.Errorf("eigenvector_tolerance must be positive, got %g", o.EigenvectorTolerance)
	}
	if o.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %f", o.Resolution)
	}
	return nil
}

// Engine runs ranking algorithms over weighted graphs. An Engine holds no
// per-graph state and is safe for concurrent use.
type Engine struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an Engine. Invalid options are replaced by the defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(opts Options, logger zerolog.Logger) *Engine {
	log := logger.With().Str("component", "centrality").Logger()
	if err := opts.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid centrality options, using defaults")
		opts = DefaultOptions()
	}
	return &Engine{opts: opts, logger: log}
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}
