// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"fmt"

	"github.com/tomtom215/curatorgraph/internal/trust"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Trust holds the trust formula constants.
	Trust trust.Params `json:"trust" koanf:"trust"`

	// Curators controls the trust curator path.
	Curators CuratorConfig `json:"curators" koanf:"curators"`

	// Fallback controls the PageRank fallback path.
	Fallback FallbackConfig `json:"fallback" koanf:"fallback"`

	// Recommendations controls trust-based artist recommendations.
	Recommendations RecommendationConfig `json:"recommendations" koanf:"recommendations"`

	// PageRank controls PageRank-based artist recommendations.
	PageRank PageRankConfig `json:"pagerank" koanf:"pagerank"`

	// ColdStart controls recommendations for cold-start users.
	ColdStart ColdStartConfig `json:"cold_start" koanf:"cold_start"`

	// Coverage controls the trust versus PageRank coverage comparison.
	Coverage CoverageConfig `json:"coverage" koanf:"coverage"`

	// Symmetry controls the mutual trust symmetry analysis.
	Symmetry SymmetryConfig `json:"symmetry" koanf:"symmetry"`
}

// CuratorConfig contains trust curator parameters.
type CuratorConfig struct {
	// MinTrust is the smallest trust score a curator needs.
	// Default: 0.05.
	MinTrust float64 `json:"min_trust" koanf:"min_trust" validate:"unit_interval"`

	// MaxCurators caps the curator list.
	// Default: 50.
	MaxCurators int `json:"max_curators" koanf:"max_curators" validate:"gte=1"`
}

// FallbackConfig contains PageRank fallback parameters.
type FallbackConfig struct {
	// MinTrustEdges is the number of outgoing trust edges below which a
	// user is served by the fallback path.
	// Default: 1.
	MinTrustEdges int `json:"min_trust_edges" koanf:"min_trust_edges" validate:"gte=0"`

	// MaxCurators caps the fallback curator list.
	// Default: 10.
	MaxCurators int `json:"max_curators" koanf:"max_curators" validate:"gte=1"`

	// CommunityScoped restricts fallback curators to the user's community.
	// Default: true.
	CommunityScoped bool `json:"community_scoped" koanf:"community_scoped"`
}

// RecommendationConfig contains trust recommendation parameters.
type RecommendationConfig struct {
	// MaxRecommendations caps the recommendation list.
	// Default: 20.
	MaxRecommendations int `json:"max_recommendations" koanf:"max_recommendations" validate:"gte=1"`

	// CuratorsPerArtist is the number of curators credited per artist.
	// Default: 3.
	CuratorsPerArtist int `json:"curators_per_artist" koanf:"curators_per_artist" validate:"gte=1"`
}

// PageRankConfig contains PageRank recommendation parameters.
type PageRankConfig struct {
	// TopCurators is the number of highest-ranked users consulted.
	// Default: 20.
	TopCurators int `json:"top_curators" koanf:"top_curators" validate:"gte=1"`

	// ScoreScale multiplies pagerank × affinity so scores are comparable
	// with trust scores.
	// Default: 1000.
	ScoreScale float64 `json:"score_scale" koanf:"score_scale" validate:"gt=0"`

	// MaxRecommendations caps the recommendation list.
	// Default: 15.
	MaxRecommendations int `json:"max_recommendations" koanf:"max_recommendations" validate:"gte=1"`

	// CuratorsPerArtist is the number of curators credited per artist.
	// Default: 3.
	CuratorsPerArtist int `json:"curators_per_artist" koanf:"curators_per_artist" validate:"gte=1"`
}

// ColdStartConfig contains cold-start recommendation parameters.
type ColdStartConfig struct {
	// MaxCurators is the number of fallback curators fetched.
	// Default: 5.
	MaxCurators int `json:"max_curators" koanf:"max_curators" validate:"gte=1"`

	// SourceCurators is the number of those curators whose artists are used.
	// Default: 3.
	SourceCurators int `json:"source_curators" koanf:"source_curators" validate:"gte=1"`

	// ArtistsPerCurator is the number of artists taken from each curator.
	// Default: 5.
	ArtistsPerCurator int `json:"artists_per_curator" koanf:"artists_per_curator" validate:"gte=1"`
}

// CoverageConfig contains coverage comparison parameters.
type CoverageConfig struct {
	// MinTrust is the trust threshold used when counting trust curators.
	// Default: 0.05.
	MinTrust float64 `json:"min_trust" koanf:"min_trust" validate:"unit_interval"`

	// MaxCurators caps both curator lists.
	// Default: 20.
	MaxCurators int `json:"max_curators" koanf:"max_curators" validate:"gte=1"`

	// FallbackThreshold is the trust curator count below which a user
	// needs the fallback.
	// Default: 3.
	FallbackThreshold int `json:"fallback_threshold" koanf:"fallback_threshold" validate:"gte=1"`
}

// SymmetryConfig contains mutual trust symmetry thresholds.
type SymmetryConfig struct {
	// SymmetricBelow is the trust difference below which a relationship is
	// symmetric.
	// Default: 0.1.
	SymmetricBelow float64 `json:"symmetric_below" koanf:"symmetric_below" validate:"gt=0"`

	// StrongAbove is the trust score both directions must exceed for a
	// strong mutual relationship.
	// Default: 0.2.
	StrongAbove float64 `json:"strong_above" koanf:"strong_above" validate:"gte=0"`
}

// DefaultConfig returns a Config with the standard thresholds.
func DefaultConfig() *Config {
	return &Config{
		Trust: trust.DefaultParams(),
		Curators: CuratorConfig{
			MinTrust:    0.05,
			MaxCurators: 50,
		},
		Fallback: FallbackConfig{
			MinTrustEdges:   1,
			MaxCurators:     10,
			CommunityScoped: true,
		},
		Recommendations: RecommendationConfig{
			MaxRecommendations: 20,
			CuratorsPerArtist:  3,
		},
		PageRank: PageRankConfig{
			TopCurators:        20,
			ScoreScale:         1000,
			MaxRecommendations: 15,
			CuratorsPerArtist:  3,
		},
		ColdStart: ColdStartConfig{
			MaxCurators:       5,
			SourceCurators:    3,
			ArtistsPerCurator: 5,
		},
		Coverage: CoverageConfig{
			MinTrust:          0.05,
			MaxCurators:       20,
			FallbackThreshold: 3,
		},
		Symmetry: SymmetryConfig{
			SymmetricBelow: 0.1,
			StrongAbove:    0.2,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if err := c.Trust.Validate(); err != nil {
		return fmt.Errorf("trust: %w", err)
	}

	if c.Curators.MinTrust < 0 || c.Curators.MinTrust > 1 {
		return fmt.Errorf("curators.min_trust must be in [0, 1], got %f", c.Curators.MinTrust)
	}
	if c.Curators.MaxCurators < 1 {
		return fmt.Errorf("curators.max_curators must be positive, got %d", c.Curators.MaxCurators)
	}

	if c.Fallback.MinTrustEdges < 0 {
		return fmt.Errorf("fallback.min_trust_edges must be non-negative, got %d", c.Fallback.MinTrustEdges)
	}
	if c.Fallback.MaxCurators < 1 {
		return fmt.Errorf("fallback.max_curators must be positive, got %d", c.Fallback.MaxCurators)
	}

	if c.Recommendations.MaxRecommendations < 1 {
		return fmt.Errorf("recommendations.max_recommendations must be positive, got %d", c.Recommendations.MaxRecommendations)
	}
	if c.Recommendations.CuratorsPerArtist < 1 {
		return fmt.Errorf("recommendations.curators_per_artist must be positive, got %d", c.Recommendations.CuratorsPerArtist)
	}

	if c.PageRank.TopCurators < 1 {
		return fmt.Errorf("pagerank.top_curators must be positive, got %d", c.PageRank.TopCurators)
	}
	if c.PageRank.ScoreScale <= 0 {
		return fmt.Errorf("pagerank.score_scale must be positive, got %f", c.PageRank.ScoreScale)
	}
	if c.PageRank.MaxRecommendations < 1 || c.PageRank.CuratorsPerArtist < 1 {
		return fmt.Errorf("pagerank.max_recommendations and pagerank.curators_per_artist must be positive, got %d and %d",
			c.PageRank.MaxRecommendations, c.PageRank.CuratorsPerArtist)
	}

	if c.ColdStart.MaxCurators < 1 || c.ColdStart.SourceCurators < 1 || c.ColdStart.ArtistsPerCurator < 1 {
		return fmt.Errorf("cold_start limits must be positive, got %+v", c.ColdStart)
	}
	if c.ColdStart.SourceCurators > c.ColdStart.MaxCurators {
		return fmt.Errorf("cold_start.source_curators must be <= cold_start.max_curators, got %d > %d",
			c.ColdStart.SourceCurators, c.ColdStart.MaxCurators)
	}

	if c.Coverage.MinTrust < 0 || c.Coverage.MinTrust > 1 {
		return fmt.Errorf("coverage.min_trust must be in [0, 1], got %f", c.Coverage.MinTrust)
	}
	if c.Coverage.MaxCurators < 1 || c.Coverage.FallbackThreshold < 1 {
		return fmt.Errorf("coverage.max_curators and coverage.fallback_threshold must be positive, got %d and %d",
			c.Coverage.MaxCurators, c.Coverage.FallbackThreshold)
	}

	if c.Symmetry.SymmetricBelow <= 0 {
		return fmt.Errorf("symmetry.symmetric_below must be positive, got %f", c.Symmetry.SymmetricBelow)
	}
	if c.Symmetry.StrongAbove < 0 {
		return fmt.Errorf("symmetry.strong_above must be non-negative, got %f", c.Symmetry.StrongAbove)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Every section contains only value types.
	clone := *c
	return &clone
}
