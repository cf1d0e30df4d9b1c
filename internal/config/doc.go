// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package config provides centralized configuration management for Curatorgraph.

Configuration is loaded with Koanf v2 in three layers, each overriding the
previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, then config.yaml, config.yml,
    /etc/curatorgraph/config.yaml)
 3. Environment variables mapped through envTransformFunc

# Configuration Structure

  - DatabaseConfig: DuckDB file, memory limit, threads, and the rate limit and
    circuit breaker guarding data source fetches
  - analysis.Options: time window, fetch limits, worker count, community
    algorithm
  - SchedulerConfig: periodic analysis runs of the serve command
  - recommend.Config: trust formula constants and curator/recommendation limits
  - centrality.Options: PageRank damping, betweenness sampling, eigenvector
    iteration limits, modularity resolution
  - ServerConfig: HTTP listen address, CORS origins, API rate limiting
  - StoreConfig: Badger report store location and TTL
  - EventsConfig: run-completed event publishing (in-process, NATS, or an
    embedded NATS server)
  - logging.Config: zerolog level and format

# Environment Variables

Database:
  - DUCKDB_PATH: Database file path (default: /data/curatorgraph.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
  - DUCKDB_THREADS: DuckDB threads (default: NumCPU)
  - SOURCE_RATE_LIMIT: Fetches per second, 0 disables (default: 0)
  - SOURCE_CIRCUIT_BREAKER: Guard fetches with a circuit breaker (default: true)

Analysis:
  - ANALYSIS_WINDOW: Interaction edge window (default: 720h)
  - ANALYSIS_WORKERS: Concurrent per-user analyses (default: 8)
  - ANALYSIS_MAX_USERS: Users analyzed per run, 0 = all (default: 0)
  - COMMUNITY_ALGORITHM: louvain or greedy_modularity (default: louvain)
  - ANALYSIS_INTERVAL: Time between scheduled runs (default: 6h)

Server:
  - HTTP_HOST, HTTP_PORT: Listen address (default: 0.0.0.0:3858)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP API rate limit

Report store and events:
  - REPORT_STORE_PATH: Badger directory (default: /data/reports)
  - REPORT_TTL: Report retention, 0 keeps forever (default: 720h)
  - EVENTS_BACKEND: memory, nats or embedded (default: memory)
  - NATS_URL: NATS server URL when EVENTS_BACKEND=nats
  - NATS_EMBEDDED_HOST, NATS_EMBEDDED_PORT: listen address when
    EVENTS_BACKEND=embedded (default: 127.0.0.1:4222)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)

# Validation

Config.Validate runs struct tag validation (internal/validation) followed by
per-section checks, returning the first error found.
*/
package config
