// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/curatorgraph/internal/metrics"
	"github.com/tomtom215/curatorgraph/internal/models"
)

// InsertUserNodes upserts users by node id.
func (db *DB) InsertUserNodes(ctx context.Context, users []models.UserNode) error {
	return db.insertBatch(ctx, "insert_users", tableUsers, `
		INSERT INTO user_nodes (node_id, display_name, avatar_url)
		VALUES (?, ?, ?)
		ON CONFLICT (node_id) DO UPDATE SET
			display_name = excluded.display_name,
			avatar_url = excluded.avatar_url`,
		len(users), func(stmt *sql.Stmt, i int) error {
			u := users[i]
			_, err := stmt.ExecContext(ctx, u.NodeID, nullIfEmpty(u.DisplayName), nullIfEmpty(u.AvatarURL))
			return err
		})
}

// InsertInteractionEdges appends raw interaction edges.
func (db *DB) InsertInteractionEdges(ctx context.Context, edges []models.InteractionEdge) error {
	for _, e := range edges {
		if e.EdgeType == models.EdgeTypeUnknown {
			return fmt.Errorf("edge %d->%d has unknown type", e.SourceUserID, e.TargetUserID)
		}
	}
	return db.insertBatch(ctx, "insert_edges", tableEdges, `
		INSERT INTO edges (source_user_id, target_user_id, edge_type, cast_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		len(edges), func(stmt *sql.Stmt, i int) error {
			e := edges[i]
			_, err := stmt.ExecContext(ctx, e.SourceUserID, e.TargetUserID, e.EdgeType.String(), nullIfEmpty(e.CastID), e.CreatedAt.UTC())
			return err
		})
}

// InsertMusicRecords appends music library records.
func (db *DB) InsertMusicRecords(ctx context.Context, records []models.MusicRecord) error {
	return db.insertBatch(ctx, "insert_music", tableMusic, `
		INSERT INTO music_library (cast_id, author_fid, artist, title, platform_name)
		VALUES (?, ?, ?, ?, ?)`,
		len(records), func(stmt *sql.Stmt, i int) error {
			r := records[i]
			_, err := stmt.ExecContext(ctx, r.CastID, r.UserID, nullIfEmpty(r.ArtistName), nullIfEmpty(r.Title), nullIfEmpty(r.Platform))
			return err
		})
}

// insertBatch runs exec for n rows through one prepared statement in a transaction.
func (db *DB) insertBatch(ctx context.Context, operation, table, query string, n int, exec func(*sql.Stmt, int) error) (err error) {
	if n == 0 {
		return nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(operation, table, time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", operation, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", operation, err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := 0; i < n; i++ {
		if err = exec(stmt, i); err != nil {
			return fmt.Errorf("%s: row %d: %w", operation, i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", operation, err)
	}
	return nil
}

// nullIfEmpty maps "" to SQL NULL.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
