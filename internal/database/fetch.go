// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/curatorgraph/internal/metrics"
	"github.com/tomtom215/curatorgraph/internal/models"
)

const (
	tableUsers = "user_nodes"
	tableEdges = "edges"
	tableMusic = "music_library"
)

// FetchUserNodes returns up to limit users ordered by id. A limit of zero returns all.
func (db *DB) FetchUserNodes(ctx context.Context, limit int) ([]models.UserNode, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	query, args := newQueryBuilder(`
		SELECT node_id,
			COALESCE(NULLIF(display_name, ''), fname, ''),
			COALESCE(avatar_url, '')
		FROM user_nodes`).build("ORDER BY node_id", limit)

	users, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.UserNode, error) {
		var u models.UserNode
		err := rows.Scan(&u.NodeID, &u.DisplayName, &u.AvatarURL)
		return u, err
	})
	metrics.RecordDBQuery("fetch_users", tableUsers, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch user nodes: %w", err)
	}
	metrics.RecordRowsFetched(tableUsers, len(users))
	return users, nil
}

// FetchUserNode returns a single user, or ErrNotFound.
func (db *DB) FetchUserNode(ctx context.Context, userID int64) (models.UserNode, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var u models.UserNode
	err := db.conn.QueryRowContext(ctx, `
		SELECT node_id,
			COALESCE(NULLIF(display_name, ''), fname, ''),
			COALESCE(avatar_url, '')
		FROM user_nodes
		WHERE node_id = ?`, userID).Scan(&u.NodeID, &u.DisplayName, &u.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("fetch_user", tableUsers, time.Since(start), nil)
		return models.UserNode{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	metrics.RecordDBQuery("fetch_user", tableUsers, time.Since(start), err)
	if err != nil {
		return models.UserNode{}, fmt.Errorf("fetch user node %d: %w", userID, err)
	}
	return u, nil
}

// FetchInteractionEdges returns the interaction edges matching q, oldest first.
func (db *DB) FetchInteractionEdges(ctx context.Context, q models.EdgeQuery) ([]models.InteractionEdge, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	qb := newQueryBuilder(`
		SELECT source_user_id, target_user_id, edge_type, COALESCE(cast_id, ''), created_at
		FROM edges`)
	addInFilter(qb, "edge_type", edgeTypeStrings(q.EdgeTypes))
	qb.addDateRangeFilter("created_at", q.Start, q.End)
	addInFilter(qb, "cast_id", q.CastIDs)
	query, args := qb.build("ORDER BY created_at, source_user_id, target_user_id", q.Limit)

	start := time.Now()
	edges, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.InteractionEdge, error) {
		var (
			e        models.InteractionEdge
			edgeType string
		)
		if err := rows.Scan(&e.SourceUserID, &e.TargetUserID, &edgeType, &e.CastID, &e.CreatedAt); err != nil {
			return e, err
		}
		e.EdgeType = models.ParseEdgeType(edgeType)
		e.CreatedAt = e.CreatedAt.UTC()
		return e, nil
	})
	metrics.RecordDBQuery("fetch_edges", tableEdges, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch interaction edges: %w", err)
	}
	metrics.RecordRowsFetched(tableEdges, len(edges))
	return edges, nil
}

// FetchPostsInPeriod returns AUTHORED edges created within [start, end].
func (db *DB) FetchPostsInPeriod(ctx context.Context, start, end time.Time, limit int) ([]models.InteractionEdge, error) {
	return db.FetchInteractionEdges(ctx, models.PostsQuery(start, end, limit))
}

// FetchEngagementsOnCasts returns LIKED, REPLIED and RECASTED edges on the given casts.
func (db *DB) FetchEngagementsOnCasts(ctx context.Context, castIDs []string, limit int) ([]models.InteractionEdge, error) {
	if len(castIDs) == 0 {
		return []models.InteractionEdge{}, nil
	}
	return db.FetchInteractionEdges(ctx, models.EngagementsQuery(castIDs, limit))
}

// FetchMusicRecords returns up to limit music records that name an artist.
// A limit of zero returns all.
func (db *DB) FetchMusicRecords(ctx context.Context, limit int) ([]models.MusicRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query, args := newQueryBuilder(`
		SELECT author_fid, artist, cast_id, COALESCE(title, ''), COALESCE(platform_name, '')
		FROM music_library`).
		addFilter("artist IS NOT NULL AND artist <> ''").
		build("ORDER BY processed_at, cast_id", limit)

	start := time.Now()
	records, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.MusicRecord, error) {
		var r models.MusicRecord
		err := rows.Scan(&r.UserID, &r.ArtistName, &r.CastID, &r.Title, &r.Platform)
		return r, err
	})
	metrics.RecordDBQuery("fetch_music", tableMusic, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch music records: %w", err)
	}
	metrics.RecordRowsFetched(tableMusic, len(records))
	return records, nil
}

// FetchUserPostCounts returns the AUTHORED edge count of each requested user.
// Requested users without posts map to 0. An empty userIDs counts every author.
func (db *DB) FetchUserPostCounts(ctx context.Context, userIDs []int64) (map[int64]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	qb := newQueryBuilder(`SELECT source_user_id, COUNT(*) FROM edges`).
		addFilter("edge_type = ?", models.EdgeTypeAuthored.String())
	addInFilter(qb, "source_user_id", userIDs)
	query, args := qb.build("GROUP BY source_user_id", 0)

	type postCount struct {
		userID int64
		count  int
	}

	start := time.Now()
	rows, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (postCount, error) {
		var pc postCount
		err := rows.Scan(&pc.userID, &pc.count)
		return pc, err
	})
	metrics.RecordDBQuery("fetch_post_counts", tableEdges, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch user post counts: %w", err)
	}

	counts := make(map[int64]int, len(userIDs)+len(rows))
	for _, id := range userIDs {
		counts[id] = 0
	}
	for _, pc := range rows {
		counts[pc.userID] = pc.count
	}
	return counts, nil
}
