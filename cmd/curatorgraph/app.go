// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/database"
	"github.com/tomtom215/curatorgraph/internal/events"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/recommend"
	"github.com/tomtom215/curatorgraph/internal/reportstore"
	"github.com/tomtom215/curatorgraph/internal/supervisor/services"
)

// app holds the wired components shared by the run and serve commands.
type app struct {
	cfg       *config.Config
	db        *database.DB
	source    *database.ResilientSource
	pipeline  *analysis.Pipeline
	store     *reportstore.Store
	publisher *events.Publisher
}

// newApp opens the database, report store and event publisher and builds
// the analysis pipeline. Components opened before a failure are closed.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	a.db, err = database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logging.Info().Str("db_path", cfg.Database.Path).Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		if err = a.db.SeedDemoData(ctx, time.Now()); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	a.source = database.NewResilientSource(a.db, &cfg.Database)

	logger := logging.Logger()
	ranker := centrality.New(cfg.Centrality, logger)
	recommender, err := recommend.NewEngine(&cfg.Recommend, ranker, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	a.pipeline, err = analysis.NewPipeline(a.source, ranker, recommender, cfg.Analysis, logger)
	if err != nil {
		return nil, fmt.Errorf("create analysis pipeline: %w", err)
	}

	a.store, err = reportstore.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}

	if cfg.Events.Enabled {
		a.publisher, err = events.NewPublisher(cfg.Events)
		if err != nil {
			return nil, fmt.Errorf("create event publisher: %w", err)
		}
		if url := a.publisher.BrokerURL(); url != "" {
			logging.Info().Str("backend", a.publisher.Backend()).Str("url", url).Msg("Run events published over NATS")
		}
	}
	return a, nil
}

// eventPublisher returns the publisher, or nil when events are disabled.
func (a *app) eventPublisher() services.EventPublisher {
	if a.publisher == nil {
		return nil
	}
	return a.publisher
}

// close releases components in reverse order of creation.
func (a *app) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event publisher")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing report store")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
}
