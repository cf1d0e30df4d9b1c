// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package main is the entry point of the curatorgraph binary.
//
// Curatorgraph builds trust-weighted social graphs from a music social
// network stored in DuckDB, ranks curators with PageRank and trust scores,
// and recommends artists through each user's curators.
//
// # Commands
//
//	curatorgraph run    [-config path] [-seed] [-save] [-pretty]
//	curatorgraph serve  [-config path] [-seed]
//	curatorgraph version
//
// run performs one analysis and writes the report as JSON to stdout. With
// -save the report is also written to the report store.
//
// serve starts the supervisor tree: the analysis service runs on startup and
// on the scheduler interval, and the HTTP API serves stored reports. It shuts
// down gracefully on SIGINT and SIGTERM.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DUCKDB_PATH, HTTP_PORT, ANALYSIS_INTERVAL, ...)
//   - Config file (config.yaml, or the -config flag / CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// One-shot analysis of the demo network:
//
//	DUCKDB_PATH= ./curatorgraph run -seed -pretty
//
// Server with NATS events:
//
//	export DUCKDB_PATH=/data/curatorgraph.duckdb
//	export EVENTS_BACKEND=nats
//	export NATS_URL=nats://nats:4222
//	./curatorgraph serve
//
// Server with its own NATS server for local subscribers:
//
//	EVENTS_BACKEND=embedded NATS_EMBEDDED_PORT=4222 ./curatorgraph serve
package main

import (
	"os"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}
