// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package reportstore persists analysis reports in BadgerDB.

Reports are stored as JSON under their run id together with a small run
summary, and expire after the configured TTL. A "latest" pointer tracks the
most recently completed run so the API can answer without a run id:

	store, err := reportstore.Open(cfg.Store)
	if err != nil {
	    return err
	}
	defer store.Close()

	if err := store.Save(ctx, report); err != nil {
	    return err
	}
	latest, err := store.Latest(ctx)

Key layout:

	report:<run id>   full analysis.Report
	summary:<run id>  RunSummary used by List
	latest            latestPointer naming the newest completed run

Lookups of unknown or expired runs return ErrNotFound.

Recently read and saved reports are kept decoded in a cache.LRU, so repeated
API requests for the same run skip BadgerDB and JSON decoding. The cache TTL
never exceeds the store TTL. Returned reports are shared and must be treated
as read-only.
*/
package reportstore
