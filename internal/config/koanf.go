// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curatorgraph/config.yaml",
	"/etc/curatorgraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultEventTopic is the topic run-completed events are published to.
const DefaultEventTopic = "analysis.run.completed"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/curatorgraph.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true,
			QueryTimeout:           30 * time.Second,
			SeedDemoData:           false,
			RateLimit:              0,
			RateBurst:              10,
			CircuitBreaker:         true,
			BreakerTimeout:         2 * time.Minute,
			BreakerMinRequests:     10,
		},
		Analysis: analysis.DefaultOptions(),
		Scheduler: SchedulerConfig{
			Enabled:      true,
			RunOnStartup: true,
			Interval:     6 * time.Hour,
			Timeout:      30 * time.Minute,
		},
		Recommend:  *recommend.DefaultConfig(),
		Centrality: centrality.DefaultOptions(),
		Server: ServerConfig{
			Port:              3858,
			Host:              "0.0.0.0",
			Timeout:           30 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			MetricsEnabled:    true,
		},
		Store: StoreConfig{
			Path:     "/data/reports",
			InMemory: false,
			TTL:      30 * 24 * time.Hour,
		},
		Events: EventsConfig{
			Enabled:      true,
			Backend:      "memory",
			NATSURL:      "nats://127.0.0.1:4222",
			Topic:        DefaultEventTopic,
			EmbeddedHost: "127.0.0.1",
			EmbeddedPort: 4222,
		},
		Logging: logging.Config{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DUCKDB_PATH -> database.path
	// ANALYSIS_WORKERS -> analysis.workers
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Database
	"duckdb_path":                 "database.path",
	"duckdb_max_memory":           "database.max_memory",
	"duckdb_threads":              "database.threads",
	"duckdb_preserve_order":       "database.preserve_insertion_order",
	"duckdb_query_timeout":        "database.query_timeout",
	"seed_demo_data":              "database.seed_demo_data",
	"source_rate_limit":           "database.rate_limit",
	"source_rate_burst":           "database.rate_burst",
	"source_circuit_breaker":      "database.circuit_breaker",
	"source_breaker_timeout":      "database.breaker_timeout",
	"source_breaker_min_requests": "database.breaker_min_requests",

	// Analysis run
	"analysis_window":           "analysis.window",
	"analysis_user_limit":       "analysis.user_limit",
	"analysis_edge_limit":       "analysis.edge_limit",
	"analysis_post_limit":       "analysis.post_limit",
	"analysis_engagement_limit": "analysis.engagement_limit",
	"analysis_music_limit":      "analysis.music_limit",
	"analysis_workers":          "analysis.workers",
	"analysis_max_users":        "analysis.max_users",
	"analysis_top_n":            "analysis.top_n",
	"community_algorithm":       "analysis.community_algorithm",

	// Scheduler
	"scheduler_enabled":       "scheduler.enabled",
	"analysis_run_on_startup": "scheduler.run_on_startup",
	"analysis_interval":       "scheduler.interval",
	"analysis_timeout":        "scheduler.timeout",

	// Recommendation thresholds
	"curator_min_trust":             "recommend.curators.min_trust",
	"curator_max_curators":          "recommend.curators.max_curators",
	"fallback_min_trust_edges":      "recommend.fallback.min_trust_edges",
	"fallback_max_curators":         "recommend.fallback.max_curators",
	"fallback_community_scoped":     "recommend.fallback.community_scoped",
	"recommend_max":                 "recommend.recommendations.max_recommendations",
	"recommend_curators_per_artist": "recommend.recommendations.curators_per_artist",
	"trust_recency_window_days":     "recommend.trust.recency_window_days",
	"trust_recency_floor":           "recommend.trust.recency_floor",
	"trust_mutual_bonus":            "recommend.trust.mutual_bonus",

	// Centrality
	"pagerank_alpha":       "centrality.alpha",
	"betweenness_samples":  "centrality.betweenness_samples",
	"community_resolution": "centrality.resolution",
	"centrality_seed":      "centrality.seed",

	// HTTP server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"metrics_enabled":       "server.metrics_enabled",

	// Report store
	"report_store_path":      "store.path",
	"report_store_in_memory": "store.in_memory",
	"report_ttl":             "store.ttl",

	// Events
	"events_enabled":     "events.enabled",
	"events_backend":     "events.backend",
	"nats_url":           "events.nats_url",
	"events_topic":       "events.topic",
	"nats_embedded_host": "events.embedded_host",
	"nats_embedded_port": "events.embedded_port",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - ANALYSIS_INTERVAL -> scheduler.interval
//   - NATS_URL -> events.nats_url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
