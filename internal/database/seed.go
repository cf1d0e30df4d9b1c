// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package database

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/models"
)

// demoSeed fixes the demo network so repeated seeding produces the same graph.
const demoSeed = 20260301

var demoUsers = []string{
	"ana", "ben", "cleo", "dev", "emi", "finn", "gia", "hal",
	"ivy", "jon", "kai", "lou", "mae", "nik", "oto", "pia",
}

var demoArtists = []struct {
	artist   string
	title    string
	platform string
}{
	{"Burial", "Archangel", "spotify"},
	{"Boards of Canada", "Roygbiv", "spotify"},
	{"Aphex Twin", "Xtal", "youtube"},
	{"Four Tet", "Baby", "spotify"},
	{"Floating Points", "Silhouettes", "applemusic"},
	{"Jon Hopkins", "Emerald Rush", "spotify"},
	{"Caribou", "Never Come Back", "youtube"},
	{"Kelly Lee Owens", "On", "soundcloud"},
	{"Bonobo", "Kerala", "spotify"},
	{"Jamie xx", "Gosh", "youtube"},
}

// IsEmpty reports whether the database holds no users.
func (db *DB) IsEmpty(ctx context.Context) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_nodes").Scan(&n); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n == 0, nil
}

// SeedDemoData loads a small deterministic music network into an empty database.
// A database that already has users is left untouched.
func (db *DB) SeedDemoData(ctx context.Context, now time.Time) error {
	empty, err := db.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		logging.Debug().Msg("Database already has users, skipping demo seed")
		return nil
	}

	logging.Info().Msg("Seeding database with demo music network...")

	users, edges, music := demoNetwork(now)
	if err := db.InsertUserNodes(ctx, users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := db.InsertInteractionEdges(ctx, edges); err != nil {
		return fmt.Errorf("seed edges: %w", err)
	}
	if err := db.InsertMusicRecords(ctx, music); err != nil {
		return fmt.Errorf("seed music: %w", err)
	}

	logging.Info().
		Int("users", len(users)).
		Int("edges", len(edges)).
		Int("music_records", len(music)).
		Msg("Demo data seeded")
	return nil
}

type demoCast struct {
	id     string
	author int64
	at     time.Time
}

// demoNetwork builds the demo users, their posts, engagements and music
// over the 30 days before now. Users in the same half of the list engage
// with each other more often, giving the community detector two groups.
func demoNetwork(now time.Time) ([]models.UserNode, []models.InteractionEdge, []models.MusicRecord) {
	rng := rand.New(rand.NewPCG(demoSeed, demoSeed))

	users := make([]models.UserNode, len(demoUsers))
	for i, name := range demoUsers {
		users[i] = models.UserNode{NodeID: int64(i + 1), DisplayName: name}
	}

	var (
		edges []models.InteractionEdge
		music []models.MusicRecord
		casts []demoCast
	)

	for _, u := range users {
		posts := 2 + rng.IntN(4)
		for p := 0; p < posts; p++ {
			castID := fmt.Sprintf("0x%04x%02x", u.NodeID, p)
			at := now.Add(-time.Duration(rng.IntN(30*24)) * time.Hour).UTC()
			edges = append(edges, models.InteractionEdge{
				SourceUserID: u.NodeID,
				TargetUserID: u.NodeID,
				EdgeType:     models.EdgeTypeAuthored,
				CreatedAt:    at,
				CastID:       castID,
			})
			track := demoArtists[(int(u.NodeID)+p*3)%len(demoArtists)]
			music = append(music, models.MusicRecord{
				UserID:     u.NodeID,
				ArtistName: track.artist,
				CastID:     castID,
				Title:      track.title,
				Platform:   track.platform,
			})
			casts = append(casts, demoCast{id: castID, author: u.NodeID, at: at})
		}
	}

	engagementTypes := models.EngagementEdgeTypes
	half := int64(len(users) / 2)
	for _, c := range casts {
		for _, u := range users {
			if u.NodeID == c.author {
				continue
			}
			sameGroup := (u.NodeID <= half) == (c.author <= half)
			chance := 0.08
			if sameGroup {
				chance = 0.45
			}
			if rng.Float64() >= chance {
				continue
			}
			at := c.at.Add(time.Duration(1+rng.IntN(48)) * time.Hour)
			if at.After(now) {
				at = now.UTC()
			}
			edges = append(edges, models.InteractionEdge{
				SourceUserID: u.NodeID,
				TargetUserID: c.author,
				EdgeType:     engagementTypes[rng.IntN(len(engagementTypes))],
				CreatedAt:    at,
				CastID:       c.id,
			})
		}
	}

	return users, edges, music
}
