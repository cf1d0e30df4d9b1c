// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/config"
)

// defaultRunTimeout bounds a run when the scheduler has no timeout configured.
const defaultRunTimeout = 30 * time.Minute

// Runner performs one analysis run. Satisfied by *analysis.Pipeline.
type Runner interface {
	Run(ctx context.Context) (*analysis.Report, *analysis.Session, error)
}

// ReportSaver persists completed reports. Satisfied by *reportstore.Store.
type ReportSaver interface {
	Save(ctx context.Context, r *analysis.Report) error
}

// EventPublisher announces completed runs. Satisfied by *events.Publisher.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, r *analysis.Report) error
}

// AnalysisService runs the analysis pipeline on startup, on a fixed interval
// and on demand, storing every completed report.
type AnalysisService struct {
	runner    Runner
	store     ReportSaver
	publisher EventPublisher
	config    config.SchedulerConfig
	logger    zerolog.Logger
	name      string

	// trigger holds at most one queued on-demand run; pending is set from
	// TriggerRun until that run finishes.
	trigger chan struct{}
	pending atomic.Bool

	lastRunID atomic.Value
}

// NewAnalysisService creates the service. publisher may be nil when events
// are disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalysisService(runner Runner, store ReportSaver, publisher EventPublisher, cfg config.SchedulerConfig, logger zerolog.Logger) *AnalysisService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRunTimeout
	}
	return &AnalysisService{
		runner:    runner,
		store:     store,
		publisher: publisher,
		config:    cfg,
		logger:    logger.With().Str("service", "analysis").Logger(),
		name:      "analysis-service",
		trigger:   make(chan struct{}, 1),
	}
}

// Serve implements suture.Service. Failed runs are logged and retried on the
// next tick; only context cancellation stops the service.
func (s *AnalysisService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("scheduled", s.config.Enabled).
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("analysis service starting")

	if s.config.RunOnStartup {
		s.runLogged(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.config.Enabled && s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("analysis service shutting down")
			return ctx.Err()

		case <-tick:
			s.runLogged(ctx, "schedule")

		case <-s.trigger:
			s.runLogged(ctx, "manual")
			s.pending.Store(false)
		}
	}
}

// TriggerRun queues an on-demand run. It returns false when one is already
// queued or running.
func (s *AnalysisService) TriggerRun() bool {
	if !s.pending.CompareAndSwap(false, true) {
		return false
	}
	s.trigger <- struct{}{}
	return true
}

// LastRunID returns the id of the last stored run, or "" before the first.
func (s *AnalysisService) LastRunID() string {
	id, _ := s.lastRunID.Load().(string)
	return id
}

// RunOnce runs the pipeline, stores the report and publishes the
// run-completed event. A publish failure is logged but does not fail the run.
func (s *AnalysisService) RunOnce(ctx context.Context) (*analysis.Report, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	report, _, err := s.runner.Run(runCtx)
	if err != nil {
		return nil, fmt.Errorf("analysis run: %w", err)
	}
	if err := s.store.Save(runCtx, report); err != nil {
		return nil, fmt.Errorf("store report %s: %w", report.RunID, err)
	}
	s.lastRunID.Store(report.RunID)

	if s.publisher != nil {
		if err := s.publisher.PublishRunCompleted(runCtx, report); err != nil {
			s.logger.Warn().Err(err).Str("run_id", report.RunID).Msg("failed to publish run completed event")
		}
	}
	return report, nil
}

// runLogged runs once and logs the outcome.
func (s *AnalysisService) runLogged(ctx context.Context, reason string) {
	start := time.Now()
	report, err := s.RunOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("reason", reason).Msg("analysis run failed (will retry on schedule)")
		return
	}
	s.logger.Info().
		Str("reason", reason).
		Str("run_id", report.RunID).
		Int("users", report.Counts.Users).
		Int("edges", report.Counts.Edges).
		Dur("duration", time.Since(start)).
		Msg("analysis run stored")
}

// String returns the service name for logging.
func (s *AnalysisService) String() string {
	return s.name
}
