// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

// Package cache provides a generic thread-safe LRU cache with TTL expiry.
//
// The report store uses it to keep recently read reports decoded so repeated
// API requests against the same run skip BadgerDB and JSON decoding.
package cache
