// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// EventLogger logs run-completed event publication with consistent fields.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates an EventLogger on the global logger.
func NewEventLogger() *EventLogger {
	return NewEventLoggerWithLogger(Logger())
}

// NewEventLoggerWithLogger creates an EventLogger on logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEventLoggerWithLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (e *EventLogger) withContext(ctx context.Context) zerolog.Logger {
	logCtx := e.logger.With()
	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}
	return logCtx.Logger()
}

// LogEventPublished logs a published event.
func (e *EventLogger) LogEventPublished(ctx context.Context, eventID, topic string, elapsed time.Duration) {
	logger := e.withContext(ctx)
	logger.Debug().
		Str("event_id", eventID).
		Str("topic", topic).
		Dur("elapsed", elapsed).
		Msg("event published")
}

// LogPublishFailed logs a failed publish.
func (e *EventLogger) LogPublishFailed(ctx context.Context, eventID, topic string, err error) {
	logger := e.withContext(ctx)
	logger.Warn().
		Err(err).
		Str("event_id", eventID).
		Str("topic", topic).
		Msg("event publish failed")
}

// LogPublisherStarted logs the publisher backend in use.
func (e *EventLogger) LogPublisherStarted(backend, topic string) {
	e.logger.Info().
		Str("backend", backend).
		Str("topic", topic).
		Msg("event publisher started")
}

// LogPublisherClosed logs publisher shutdown.
func (e *EventLogger) LogPublisherClosed(backend string) {
	e.logger.Info().
		Str("backend", backend).
		Msg("event publisher closed")
}
