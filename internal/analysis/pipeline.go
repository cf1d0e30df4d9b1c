// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/curatorgraph/internal/centrality"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/metrics"
	"github.com/tomtom215/curatorgraph/internal/models"
	"github.com/tomtom215/curatorgraph/internal/recommend"
)

// Pipeline runs batch analyses against a DataSource.
type Pipeline struct {
	source      DataSource
	ranker      *centrality.Engine
	recommender *recommend.Engine
	opts        Options
	logger      zerolog.Logger

	now      func() time.Time
	newRunID func() string
}

// NewPipeline creates a pipeline. A nil ranker uses default centrality
// options and a nil recommender the default recommendation config.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(source DataSource, ranker *centrality.Engine, recommender *recommend.Engine, opts Options, logger zerolog.Logger) (*Pipeline, error) {
	if source == nil {
		return nil, fmt.Errorf("data source is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis options: %w", err)
	}
	if ranker == nil {
		ranker = centrality.New(centrality.DefaultOptions(), logger)
	}
	if recommender == nil {
		var err error
		recommender, err = recommend.NewEngine(nil, ranker, logger)
		if err != nil {
			return nil, err
		}
	}

	return &Pipeline{
		source:      source,
		ranker:      ranker,
		recommender: recommender,
		opts:        opts,
		logger:      logger.With().Str("component", "analysis").Logger(),
		now:         time.Now,
		newRunID:    logging.GenerateRunID,
	}, nil
}

// Options returns the pipeline options.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Run performs one full analysis. It returns ErrNoUsers when the data source
// has no users. A failed fetch aborts the run before any graph is built.
func (p *Pipeline) Run(ctx context.Context) (*Report, *Session, error) {
	started := p.now()
	runID := p.newRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := p.logger.With().Str("run_id", runID).Logger()

	report, session, err := p.run(ctx, logger, runID, started)
	status := "success"
	switch {
	case err == nil:
	case ctx.Err() != nil:
		status = "canceled"
	default:
		status = "error"
	}
	metrics.RecordAnalysisRun(status, p.now().Sub(started))
	if err != nil {
		logger.Error().Err(err).Msg("analysis run failed")
		return nil, nil, err
	}
	return report, session, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (p *Pipeline) run(ctx context.Context, logger zerolog.Logger, runID string, started time.Time) (*Report, *Session, error) {
	window := p.window(started)
	logger.Info().
		Time("window_start", window.Start).
		Time("window_end", window.End).
		Msg("starting analysis run")

	input, err := p.fetch(ctx, window)
	if err != nil {
		return nil, nil, err
	}

	session := NewSession(input, p.ranker, p.opts.CommunityAlgorithm, logger)
	report := &Report{
		RunID:     runID,
		StartedAt: started,
		Window:    window,
		Counts: Counts{
			Users:        len(input.Users),
			Edges:        len(input.Edges),
			Posts:        len(input.Posts),
			Engagements:  len(input.Engagements),
			MusicRecords: len(input.Music),
		},
		Centrality: make(map[string]Highlights),
	}

	report.Graphs = session.Summaries()
	for _, s := range report.Graphs {
		metrics.RecordGraphSize(s.Name, s.Nodes, s.Edges)
	}

	social, _ := session.Graph(GraphSocial)
	trustGraph, _ := session.Graph(GraphTrust)
	authority, _ := session.Graph(GraphArtistAuthority)

	pagerank := session.PageRank()
	report.TopPageRank = centrality.Top(pagerank, p.opts.TopN)
	report.TopInfluencers = topInfluencers(p.ranker.Influence(social, pagerank), p.opts.TopN)
	report.Centrality[GraphSocial] = highlights(p.ranker, social, p.opts.TopN)
	report.Centrality[GraphTrust] = highlights(p.ranker, trustGraph, p.opts.TopN)
	report.TopArtists = centrality.Top(session.PageRankOf(GraphArtistAuthority), p.opts.TopN)

	part, ok := session.PartitionOf(GraphSocial)
	report.Communities = communityReport(part, ok, p.opts.CommunityAlgorithm)
	logger.Debug().
		Int("communities", report.Communities.Count).
		Float64("modularity", report.Communities.Modularity).
		Int("artists", authority.NodeCount()).
		Msg("rankings computed")

	mutual := p.recommender.MutualTrust(trustGraph, session.PostCounts())
	report.Mutual = MutualReport{
		Symmetry: p.recommender.AnalyzeSymmetry(mutual),
		Top:      mutual[:min(len(mutual), p.opts.TopN)],
	}

	users := p.selectUsers(input.Users)
	report.Users, err = p.analyzeUsers(ctx, session, users)
	if err != nil {
		return nil, nil, err
	}

	snapshot := session.Snapshot()
	coldStart := p.recommender.ColdStartUsers(social, trustGraph)
	report.ColdStart = ColdStartReport{
		Users:    coldStart,
		Count:    len(coldStart),
		Coverage: p.recommender.CompareCoverage(snapshot, userIDs(users)),
	}
	metrics.SetColdStartUsers(len(coldStart))

	report.CompletedAt = p.now()
	report.DurationMS = report.CompletedAt.Sub(started).Milliseconds()

	logger.Info().
		Int("users", report.Counts.Users).
		Int("edges", report.Counts.Edges).
		Int("analyzed_users", len(report.Users)).
		Int("cold_start_users", report.ColdStart.Count).
		Int64("duration_ms", report.DurationMS).
		Msg("analysis run completed")

	return report, session, nil
}

// window returns the interaction date range ending at now.
func (p *Pipeline) window(now time.Time) Window {
	if p.opts.Window <= 0 {
		return Window{}
	}
	return Window{Start: now.Add(-p.opts.Window), End: now}
}

// fetch loads the raw data of a run. Users are fetched first; the remaining
// fetches run concurrently.
func (p *Pipeline) fetch(ctx context.Context, window Window) (*Input, error) {
	users, err := p.source.FetchUserNodes(ctx, p.opts.UserLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	in := &Input{Users: users}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		edges, err := p.source.FetchInteractionEdges(gCtx, models.EdgeQuery{
			Start: window.Start,
			End:   window.End,
			Limit: p.opts.EdgeLimit,
		})
		if err != nil {
			return fmt.Errorf("fetch interaction edges: %w", err)
		}
		in.Edges = edges
		return nil
	})

	g.Go(func() error {
		posts, err := p.source.FetchInteractionEdges(gCtx, models.PostsQuery(window.Start, window.End, p.opts.PostLimit))
		if err != nil {
			return fmt.Errorf("fetch posts: %w", err)
		}
		in.Posts = posts

		castIDs := castIDsOf(posts)
		if len(castIDs) == 0 {
			return nil
		}
		engagements, err := p.source.FetchInteractionEdges(gCtx, models.EngagementsQuery(castIDs, p.opts.EngagementLimit))
		if err != nil {
			return fmt.Errorf("fetch engagements: %w", err)
		}
		in.Engagements = engagements
		return nil
	})

	g.Go(func() error {
		music, err := p.source.FetchMusicRecords(gCtx, p.opts.MusicLimit)
		if err != nil {
			return fmt.Errorf("fetch music records: %w", err)
		}
		in.Music = music
		return nil
	})

	g.Go(func() error {
		counts, err := p.source.FetchUserPostCounts(gCtx, userIDs(users))
		if err != nil {
			return fmt.Errorf("fetch post counts: %w", err)
		}
		in.PostCounts = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// selectUsers returns the users that get per-user results.
func (p *Pipeline) selectUsers(users []models.UserNode) []models.UserNode {
	if p.opts.MaxUsers > 0 && len(users) > p.opts.MaxUsers {
		return users[:p.opts.MaxUsers]
	}
	return users
}

// analyzeUsers computes curators and recommendations for every user in
// parallel. Results keep the order of users.
func (p *Pipeline) analyzeUsers(ctx context.Context, session *Session, users []models.UserNode) ([]UserResult, error) {
	snapshot := session.Snapshot()
	results := make([]UserResult, len(users))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, u := range users {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			curators := p.recommender.Curators(snapshot, u.NodeID)
			metrics.RecordCuratorSource(string(curators.Source))
			results[i] = UserResult{
				UserID:          u.NodeID,
				DisplayName:     displayName(u),
				Curators:        curators,
				Recommendations: p.recommender.Recommendations(snapshot, u.NodeID),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze users: %w", err)
	}
	return results, nil
}

func displayName(u models.UserNode) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "User_" + strconv.FormatInt(u.NodeID, 10)
}

func userIDs(users []models.UserNode) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.NodeID
	}
	return ids
}

// castIDsOf returns the distinct cast ids of posts in first-seen order.
func castIDsOf(posts []models.InteractionEdge) []string {
	seen := make(map[string]struct{}, len(posts))
	var ids []string
	for _, e := range posts {
		if e.CastID == "" {
			continue
		}
		if _, ok := seen[e.CastID]; ok {
			continue
		}
		seen[e.CastID] = struct{}{}
		ids = append(ids, e.CastID)
	}
	return ids
}

func topInfluencers(all []centrality.NodeInfluence, n int) []centrality.NodeInfluence {
	if len(all) > n {
		return all[:n]
	}
	return all
}
