// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		// Users of the network
		`CREATE TABLE IF NOT EXISTS user_nodes (
			node_id BIGINT PRIMARY KEY,
			fname TEXT,
			display_name TEXT,
			avatar_url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Raw interactions: AUTHORED, LIKED, RECASTED, REPLIED
		`CREATE TABLE IF NOT EXISTS edges (
			source_user_id BIGINT NOT NULL,
			target_user_id BIGINT NOT NULL,
			edge_type TEXT NOT NULL,
			cast_id TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		// Artists extracted from music links shared in casts
		`CREATE TABLE IF NOT EXISTS music_library (
			cast_id TEXT NOT NULL,
			author_fid BIGINT NOT NULL,
			artist TEXT,
			title TEXT,
			platform_name TEXT,
			processed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_edges_type_created ON edges(edge_type, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_cast ON edges(cast_id)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_music_author ON music_library(author_fid)`,
	}
}
