// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/curatorgraph/internal/validation"
)

// minSchedulerInterval is the shortest allowed time between scheduled runs.
const minSchedulerInterval = time.Minute

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := c.Centrality.Validate(); err != nil {
		return fmt.Errorf("centrality: %w", err)
	}

	if err := c.validateScheduler(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase validates DuckDB and data source resilience settings.
// An empty path opens an in-memory database.
func (c *Config) validateDatabase() error {
	if c.Database.RateLimit > 0 && c.Database.RateBurst < 1 {
		return fmt.Errorf("SOURCE_RATE_BURST must be at least 1 when SOURCE_RATE_LIMIT is set")
	}
	if c.Database.CircuitBreaker && c.Database.BreakerTimeout <= 0 {
		return fmt.Errorf("SOURCE_BREAKER_TIMEOUT must be positive when the circuit breaker is enabled")
	}
	return nil
}

// validateScheduler validates the periodic analysis settings (only if enabled)
func (c *Config) validateScheduler() error {
	if !c.Scheduler.Enabled {
		return nil
	}
	if c.Scheduler.Interval < minSchedulerInterval {
		return fmt.Errorf("ANALYSIS_INTERVAL must be at least %s, got %s", minSchedulerInterval, c.Scheduler.Interval)
	}
	if c.Scheduler.Timeout <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT must be positive")
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Server.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.Server.RateLimitWindow)
	}
	return nil
}

// ShouldWarnAboutCORS reports whether the CORS configuration allows every origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

// validateStore validates report store settings
func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("REPORT_STORE_PATH is required unless REPORT_STORE_IN_MEMORY=true")
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("REPORT_TTL must be non-negative")
	}
	return nil
}

// validateEvents validates event publishing settings (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.Backend == "nats" {
		if err := validation.NATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	return nil
}

// validLogLevels lists the accepted LOG_LEVEL values.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats lists the accepted LOG_FORMAT values.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
