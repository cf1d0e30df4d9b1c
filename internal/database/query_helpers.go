// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/curatorgraph/internal/models"
)

// queryBuilder accumulates WHERE conditions and their arguments.
type queryBuilder struct {
	baseQuery string
	args      []interface{}
	filters   []string
}

// newQueryBuilder creates a new query builder with a base query.
// The base query must not contain a WHERE clause.
func newQueryBuilder(baseQuery string) *queryBuilder {
	return &queryBuilder{
		baseQuery: baseQuery,
		args:      make([]interface{}, 0, 8),
		filters:   make([]string, 0, 4),
	}
}

// addFilter adds a custom filter condition
func (qb *queryBuilder) addFilter(condition string, args ...interface{}) *queryBuilder {
	qb.filters = append(qb.filters, condition)
	qb.args = append(qb.args, args...)
	return qb
}

// addInFilter adds "column IN (...)" for a non-empty value list.
func addInFilter[T any](qb *queryBuilder, column string, values []T) *queryBuilder {
	if len(values) == 0 {
		return qb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		qb.args = append(qb.args, v)
	}
	qb.filters = append(qb.filters, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ",")))
	return qb
}

// addDateRangeFilter bounds column by the non-zero ends of [start, end].
func (qb *queryBuilder) addDateRangeFilter(column string, start, end time.Time) *queryBuilder {
	if !start.IsZero() {
		qb.addFilter(column+" >= ?", start.UTC())
	}
	if !end.IsZero() {
		qb.addFilter(column+" <= ?", end.UTC())
	}
	return qb
}

// build constructs the final query and returns it with args.
// A positive limit appends a LIMIT clause after the suffix.
func (qb *queryBuilder) build(suffix string, limit int) (string, []interface{}) {
	query := qb.baseQuery
	if len(qb.filters) > 0 {
		query += " WHERE " + strings.Join(qb.filters, " AND ")
	}
	if suffix != "" {
		query += " " + suffix
	}
	args := qb.args
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return query, args
}

// edgeTypeStrings converts edge types to their stored representation.
func edgeTypeStrings(types []models.EdgeType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function.
// The result is an empty, non-nil slice when no rows match.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return results, nil
}
