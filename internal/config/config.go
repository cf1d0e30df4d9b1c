// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig     `koanf:"database"`
	Analysis   analysis.Options   `koanf:"analysis"`
	Scheduler  SchedulerConfig    `koanf:"scheduler"`
	Recommend  recommend.Config   `koanf:"recommend"`
	Centrality centrality.Options `koanf:"centrality"`
	Server     ServerConfig       `koanf:"server"`
	Store      StoreConfig        `koanf:"store"`
	Events     EventsConfig       `koanf:"events"`
	Logging    logging.Config     `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings and the resilience policy of the data source
type DatabaseConfig struct {
	Path                   string        `koanf:"path"`
	MaxMemory              string        `koanf:"max_memory" validate:"required"`
	Threads                int           `koanf:"threads" validate:"gte=0"`         // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool          `koanf:"preserve_insertion_order"`         // Whether to preserve insertion order (default true)
	QueryTimeout           time.Duration `koanf:"query_timeout" validate:"gte=0"`   // Applied when the caller has no deadline
	SeedDemoData           bool          `koanf:"seed_demo_data"`                   // Load a small demo network when the database is empty
	RateLimit              float64       `koanf:"rate_limit" validate:"gte=0"`      // Fetches per second (0 = unlimited)
	RateBurst              int           `koanf:"rate_burst" validate:"gte=0"`      // Burst size for the fetch limiter
	CircuitBreaker         bool          `koanf:"circuit_breaker"`                  // Guard fetches with a circuit breaker
	BreakerTimeout         time.Duration `koanf:"breaker_timeout" validate:"gte=0"` // Open state duration before probing again
	BreakerMinRequests     uint32        `koanf:"breaker_min_requests" validate:"gte=1"`
}

// SchedulerConfig controls the periodic analysis run of the serve command
type SchedulerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	RunOnStartup bool          `koanf:"run_on_startup"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	Host              string        `koanf:"host"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MetricsEnabled    bool          `koanf:"metrics_enabled"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StoreConfig holds report store settings
type StoreConfig struct {
	Path     string        `koanf:"path"`
	InMemory bool          `koanf:"in_memory"` // Keep reports in memory only (tests, one-shot runs)
	TTL      time.Duration `koanf:"ttl"`       // 0 = reports never expire
}

// EventsConfig holds run event publishing settings
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Backend string `koanf:"backend" validate:"omitempty,oneof=memory nats embedded"`
	NATSURL string `koanf:"nats_url"`
	Topic   string `koanf:"topic"`

	// Embedded NATS server listen address (embedded backend only, -1 = random port)
	EmbeddedHost string `koanf:"embedded_host"`
	EmbeddedPort int    `koanf:"embedded_port" validate:"gte=-1,lte=65535"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// String returns a short description of the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("database=%s server=%s algorithm=%s workers=%d events=%t",
		c.Database.Path, c.Server.Addr(), c.Analysis.CommunityAlgorithm, c.Analysis.Workers, c.Events.Enabled)
}
