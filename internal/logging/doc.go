// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package logging provides zerolog-based structured logging for Curatorgraph.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once with Init
//   - JSON output for production and console output for development
//   - Context-aware logging with run id and request id propagation
//   - An slog adapter so suture (via sutureslog) logs through zerolog
//   - An EventLogger for run-completed event publication
//
// # Quick Start
//
//	import "github.com/tomtom215/curatorgraph/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("users", n).Msg("analysis run completed")
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
//	logging.Ctx(ctx).Debug().Msg("graphs built")
//
// # Components
//
// Engines receive a zerolog.Logger by value and derive a component logger:
//
//	logger := logging.WithComponent("analysis")
//	pipeline, err := analysis.NewPipeline(db, ranker, recommender, opts, logger)
//
// # Configuration
//
// The logging section of the application config maps to Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Testing
//
// NewTestLogger writes JSON lines to any writer so tests can assert on the
// emitted fields:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
package logging
