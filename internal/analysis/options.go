// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package analysis

import (
	"fmt"
	"time"

	"github.com/tomtom215/curatorgraph/internal/centrality"
)

// Options controls the size and shape of an analysis run.
type Options struct {
	// Window bounds interactions and posts to the last Window before the run.
	// Zero disables the date range.
	Window time.Duration `json:"window" koanf:"window" validate:"gte=0"`

	// UserLimit caps the users fetched. Zero fetches all users.
	UserLimit int `json:"user_limit" koanf:"user_limit" validate:"gte=0"`

	// EdgeLimit caps the interaction edges fetched. Zero means no cap.
	EdgeLimit int `json:"edge_limit" koanf:"edge_limit" validate:"gte=0"`

	// PostLimit caps the authored posts fetched for the intensity graph.
	PostLimit int `json:"post_limit" koanf:"post_limit" validate:"gte=0"`

	// EngagementLimit caps the engagements fetched on those posts.
	EngagementLimit int `json:"engagement_limit" koanf:"engagement_limit" validate:"gte=0"`

	// MusicLimit caps the music records fetched. Zero means no cap.
	MusicLimit int `json:"music_limit" koanf:"music_limit" validate:"gte=0"`

	// Workers bounds the parallel per-user workers.
	Workers int `json:"workers" koanf:"workers" validate:"gte=1,lte=256"`

	// MaxUsers caps the users that get per-user curators and
	// recommendations. Zero analyzes every user.
	MaxUsers int `json:"max_users" koanf:"max_users" validate:"gte=0"`

	// TopN is the length of the ranking lists in the report.
	TopN int `json:"top_n" koanf:"top_n" validate:"gte=1"`

	// CommunityAlgorithm selects the community detection algorithm.
	CommunityAlgorithm centrality.Algorithm `json:"community_algorithm" koanf:"community_algorithm" validate:"oneof=louvain greedy_modularity"`
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{
		Window:             30 * 24 * time.Hour,
		UserLimit:          0,
		EdgeLimit:          100000,
		PostLimit:          20000,
		EngagementLimit:    100000,
		MusicLimit:         50000,
		Workers:            8,
		MaxUsers:           0,
		TopN:               20,
		CommunityAlgorithm: centrality.AlgorithmLouvain,
	}
}

// Validate checks the options for errors.
func (o Options) Validate() error {
	if o.Window < 0 {
		return fmt.Errorf("window must be non-negative, got %s", o.Window)
	}
	if o.UserLimit < 0 || o.EdgeLimit < 0 || o.PostLimit < 0 || o.EngagementLimit < 0 || o.MusicLimit < 0 {
		return fmt.Errorf("fetch limits must be non-negative")
	}
	if o.Workers < 1 || o.Workers > 256 {
		return fmt.Errorf("workers must be between 1 and 256, got %d", o.Workers)
	}
	if o.MaxUsers < 0 {
		return fmt.Errorf("max_users must be non-negative, got %d", o.MaxUsers)
	}
	if o.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", o.TopN)
	}
	if _, err := centrality.ParseAlgorithm(string(o.CommunityAlgorithm)); err != nil {
		return err
	}
	return nil
}
