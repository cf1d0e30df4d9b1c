// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/metrics"
	"github.com/tomtom215/curatorgraph/internal/models"
)

var (
	_ analysis.DataSource = (*DB)(nil)
	_ analysis.DataSource = (*ResilientSource)(nil)
)

// breakerName labels the data source circuit breaker in logs and metrics.
const breakerName = "data-source"

// ResilientSource wraps a DataSource with a fetch rate limiter and a circuit breaker.
// Fetches wait for the limiter, then run through the breaker; while the breaker
// is open, fetches fail fast with gobreaker.ErrOpenState.
//
// The breaker uses real time for its interval and timeout. Tests exercise it
// through failure counts rather than by waiting for recovery.
type ResilientSource struct {
	source  analysis.DataSource
	cb      *gobreaker.CircuitBreaker[interface{}]
	limiter *rate.Limiter
	name    string
}

// NewResilientSource creates a resilient wrapper around source.
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - cfg.BreakerTimeout before attempting recovery
//   - Opens after 60% failure rate with a minimum of cfg.BreakerMinRequests requests
func NewResilientSource(source analysis.DataSource, cfg *config.DatabaseConfig) *ResilientSource {
	rs := &ResilientSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Inf, 0),
		name:    breakerName,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		rs.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if !cfg.CircuitBreaker {
		return rs
	}

	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = 10
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	metrics.CircuitBreakerState.WithLabelValues(rs.name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(rs.name).Set(0)

	rs.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        rs.name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,

		// Opens when failure rate >= 60% with a minimum request count
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening data source circuit")
			}

			return shouldTrip
		},

		// Caller cancellation says nothing about the health of the data source
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return rs
}

// State returns the breaker state, or "disabled" without a breaker.
func (rs *ResilientSource) State() string {
	if rs.cb == nil {
		return "disabled"
	}
	return stateToString(rs.cb.State())
}

// execute waits for the limiter and runs fn through the circuit breaker
func (rs *ResilientSource) execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	if err := rs.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if rs.cb == nil {
		return fn()
	}

	result, err := rs.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(rs.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Fetch rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(rs.name, "failure").Inc()
			counts := rs.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(rs.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(rs.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(rs.name).Set(0)

	return result, nil
}

// castResult type-casts the circuit breaker result with error checking
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// FetchUserNodes fetches users with rate limiting and circuit breaker protection
func (rs *ResilientSource) FetchUserNodes(ctx context.Context, limit int) ([]models.UserNode, error) {
	return castResult[[]models.UserNode](rs.execute(ctx, func() (interface{}, error) {
		return rs.source.FetchUserNodes(ctx, limit)
	}))
}

// FetchInteractionEdges fetches edges with rate limiting and circuit breaker protection
func (rs *ResilientSource) FetchInteractionEdges(ctx context.Context, q models.EdgeQuery) ([]models.InteractionEdge, error) {
	return castResult[[]models.InteractionEdge](rs.execute(ctx, func() (interface{}, error) {
		return rs.source.FetchInteractionEdges(ctx, q)
	}))
}

// FetchMusicRecords fetches music records with rate limiting and circuit breaker protection
func (rs *ResilientSource) FetchMusicRecords(ctx context.Context, limit int) ([]models.MusicRecord, error) {
	return castResult[[]models.MusicRecord](rs.execute(ctx, func() (interface{}, error) {
		return rs.source.FetchMusicRecords(ctx, limit)
	}))
}

// FetchUserPostCounts fetches post counts with rate limiting and circuit breaker protection
func (rs *ResilientSource) FetchUserPostCounts(ctx context.Context, userIDs []int64) (map[int64]int, error) {
	return castResult[map[int64]int](rs.execute(ctx, func() (interface{}, error) {
		return rs.source.FetchUserPostCounts(ctx, userIDs)
	}))
}
