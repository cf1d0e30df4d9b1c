// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package trust

import (
	"fmt"
	"math"
)

// DefaultEngagementRate is the engagement rate assumed when none is known.
const DefaultEngagementRate = 1.0

// Params holds the constants of the trust formula.
type Params struct {
	// RecencyWindowDays is the number of days over which recency decays to
	// its floor.
	// Default: 90.
	RecencyWindowDays float64 `json:"recency_window_days" koanf:"recency_window_days" validate:"gt=0"`

	// RecencyFloor is the smallest recency factor.
	// Default: 0.5.
	RecencyFloor float64 `json:"recency_floor" koanf:"recency_floor" validate:"gte=0,lte=1"`

	// MutualBonus multiplies the score of mutual relationships.
	// Default: 1.2.
	MutualBonus float64 `json:"mutual_bonus" koanf:"mutual_bonus" validate:"gte=1"`

	// QualityScale scales the engagement rate into the quality bonus.
	// Default: 0.2.
	QualityScale float64 `json:"quality_scale" koanf:"quality_scale" validate:"gte=0"`

	// QualityCap caps the quality bonus.
	// Default: 0.2.
	QualityCap float64 `json:"quality_cap" koanf:"quality_cap" validate:"gte=0"`
}

// DefaultParams returns the standard trust formula constants.
func DefaultParams() Params {
	return Params{
		RecencyWindowDays: 90,
		RecencyFloor:      0.5,
		MutualBonus:       1.2,
		QualityScale:      0.2,
		QualityCap:        0.2,
	}
}

// Validate checks the parameters for consistency.
func (p Params) Validate() error {
	if p.RecencyWindowDays <= 0 {
		return fmt.Errorf("recency_window_days must be positive, got %f", p.RecencyWindowDays)
	}
	if p.RecencyFloor < 0 || p.RecencyFloor > 1 {
		return fmt.Errorf("recency_floor must be in [0, 1], got %f", p.RecencyFloor)
	}
	if p.MutualBonus < 1 {
		return fmt.Errorf("mutual_bonus must be at least 1, got %f", p.MutualBonus)
	}
	if p.QualityScale < 0 || p.QualityCap < 0 {
		return fmt.Errorf("quality_scale and quality_cap must be non-negative, got %f and %f", p.QualityScale, p.QualityCap)
	}
	return nil
}

// Input holds the observations a trust score is computed from.
type Input struct {
	// WeightedInteractions is the trust-weighted sum of the user's
	// interactions with the curator.
	WeightedInteractions float64 `json:"weighted_interactions"`

	// TotalPosts is the number of posts the curator authored.
	TotalPosts int `json:"total_posts"`

	// DaysSinceInteraction is the age of the most recent interaction.
	DaysSinceInteraction float64 `json:"days_since_interaction"`

	// IsMutual reports whether the curator also interacts with the user.
	IsMutual bool `json:"is_mutual"`

	// EngagementRate is the curator's average engagement rate.
	EngagementRate float64 `json:"engagement_rate"`
}

// NewInput returns an Input for a fresh interaction at the default
// engagement rate.
func NewInput(weighted float64, posts int, mutual bool) Input {
	return Input{
		WeightedInteractions: weighted,
		TotalPosts:           posts,
		IsMutual:             mutual,
		EngagementRate:       DefaultEngagementRate,
	}
}

// Breakdown is a trust score with the factors that produced it.
type Breakdown struct {
	Base    float64 `json:"base"`
	Recency float64 `json:"recency_factor"`
	Mutual  float64 `json:"mutual_factor"`
	Quality float64 `json:"quality_factor"`
	Score   float64 `json:"trust_score"`
}

// Recency returns the recency factor for an interaction days old.
// Negative ages count as day 0.
func (p Params) Recency(days float64) float64 {
	days = math.Max(0, days)
	return math.Max(p.RecencyFloor, 1-days/p.RecencyWindowDays*(1-p.RecencyFloor))
}

// Mutual returns the mutuality factor.
func (p Params) Mutual(isMutual bool) float64 {
	if isMutual {
		return p.MutualBonus
	}
	return 1
}

// Quality returns the engagement quality factor. Negative rates count as 0.
func (p Params) Quality(rate float64) float64 {
	return 1 + math.Min(p.QualityCap, math.Max(0, rate)*p.QualityScale)
}

// Explain computes the trust score and its factors. A curator without
// posts has a score of exactly 0.
//
//nolint:gocritic // Input passed by value for immutability
func (p Params) Explain(in Input) Breakdown {
	if in.TotalPosts <= 0 || math.IsNaN(in.WeightedInteractions) {
		return Breakdown{}
	}

	b := Breakdown{
		Base:    in.WeightedInteractions / float64(in.TotalPosts),
		Recency: p.Recency(in.DaysSinceInteraction),
		Mutual:  p.Mutual(in.IsMutual),
		Quality: p.Quality(in.EngagementRate),
	}
	b.Score = clamp(b.Base * b.Recency * b.Mutual * b.Quality)
	return b
}

// Score computes the trust score in [0, 1].
//
//nolint:gocritic // Input passed by value for immutability
func (p Params) Score(in Input) float64 {
	return p.Explain(in).Score
}

// Score computes the trust score with the default parameters for a fresh
// interaction at the default engagement rate.
func Score(weighted float64, posts int, mutual bool) float64 {
	return DefaultParams().Score(NewInput(weighted, posts, mutual))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
