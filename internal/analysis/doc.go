// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package analysis runs one batch analysis of the music social network.

A run fetches users, interactions, posts, engagements and music records from a
DataSource, builds every graph interpretation once, and then derives the
report: graph summaries, top PageRank and influence rankings, communities,
mutual trust, per-user curators and recommendations, and cold-start coverage.

# Session

A Session holds the graphs of one run together with memoized rankings. It
implements recommend.Ranking for the social graph so the recommendation
engine reuses the PageRank and community results of the run:

	session := analysis.NewSession(input, ranker, centrality.AlgorithmLouvain, logger)
	snapshot := session.Snapshot()
	curators := recommender.Curators(snapshot, userID)

Graphs are immutable after NewSession returns. Memoized results are computed
under a mutex the first time they are requested.

# Pipeline

Pipeline.Run drives a full run. Per-user curator and recommendation work is
fanned out over an errgroup bounded by Options.Workers; every worker writes
only its own result slot, so the report order matches the user order.

	pipeline := analysis.NewPipeline(db, ranker, recommender, opts, logger)
	report, session, err := pipeline.Run(ctx)
	if errors.Is(err, analysis.ErrNoUsers) {
	    // nothing to analyze yet
	}

A failed fetch aborts the run before any graph is built.
*/
package analysis
