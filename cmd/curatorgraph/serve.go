// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/curatorgraph/internal/api"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/supervisor"
	"github.com/tomtom215/curatorgraph/internal/supervisor/services"
)

// serveCommand runs the supervisor tree until ctx is canceled.
func serveCommand(ctx context.Context, cfg *config.Config) error {
	logging.Info().Str("config", cfg.String()).Msg("Starting Curatorgraph with supervisor tree")

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	analysisSvc := services.NewAnalysisService(a.pipeline, a.store, a.eventPublisher(), cfg.Scheduler, logging.Logger())
	tree.AddAnalysisService(analysisSvc)

	handler := api.NewHandler(cfg, a.store, a.db)
	handler.SetRunTrigger(analysisSvc)
	handler.SetSourceState(a.source)
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP API listening")
	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	logging.Info().Msg("Curatorgraph stopped")
	return err
}
