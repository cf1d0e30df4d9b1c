// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package models

import (
	"strings"
	"time"
)

// EdgeType identifies the kind of interaction an edge records.
type EdgeType int

const (
	// EdgeTypeUnknown is used for edge types the application does not recognize.
	EdgeTypeUnknown EdgeType = iota

	// EdgeTypeAuthored records that a user created a cast.
	EdgeTypeAuthored

	// EdgeTypeLiked records that a user liked a cast.
	EdgeTypeLiked

	// EdgeTypeRecasted records that a user shared a cast with their network.
	EdgeTypeRecasted

	// EdgeTypeReplied records that a user replied to a cast.
	EdgeTypeReplied
)

// EngagementEdgeTypes lists the edge types that represent engagement with
// someone else's content.
var EngagementEdgeTypes = []EdgeType{EdgeTypeLiked, EdgeTypeReplied, EdgeTypeRecasted}

// String returns the storage representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeTypeAuthored:
		return "AUTHORED"
	case EdgeTypeLiked:
		return "LIKED"
	case EdgeTypeRecasted:
		return "RECASTED"
	case EdgeTypeReplied:
		return "REPLIED"
	default:
		return "UNKNOWN"
	}
}

// ParseEdgeType converts a stored edge type string. Unrecognized values map
// to EdgeTypeUnknown so that new edge types degrade to no-ops.
func ParseEdgeType(s string) EdgeType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTHORED":
		return EdgeTypeAuthored
	case "LIKED":
		return EdgeTypeLiked
	case "RECASTED":
		return EdgeTypeRecasted
	case "REPLIED":
		return EdgeTypeReplied
	default:
		return EdgeTypeUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EdgeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EdgeType) UnmarshalText(b []byte) error {
	*t = ParseEdgeType(string(b))
	return nil
}

// IsEngagement reports whether the edge type is LIKED, REPLIED or RECASTED.
func (t EdgeType) IsEngagement() bool {
	return t == EdgeTypeLiked || t == EdgeTypeReplied || t == EdgeTypeRecasted
}

// UserNode is a user of the music-sharing network.
type UserNode struct {
	// NodeID is the stable user identifier.
	NodeID int64 `json:"node_id"`

	// DisplayName is the human readable name. May be empty.
	DisplayName string `json:"display_name,omitempty"`

	// AvatarURL references the user's avatar image. May be empty.
	AvatarURL string `json:"avatar_url,omitempty"`
}

// InteractionEdge is one raw interaction record.
type InteractionEdge struct {
	SourceUserID int64     `json:"source_user_id"`
	TargetUserID int64     `json:"target_user_id"`
	EdgeType     EdgeType  `json:"edge_type"`
	CreatedAt    time.Time `json:"created_at"`

	// CastID identifies the cast the interaction happened on. Empty when unknown.
	CastID string `json:"cast_id,omitempty"`
}

// IsSelfLoop reports whether the edge points back at its source.
func (e InteractionEdge) IsSelfLoop() bool {
	return e.SourceUserID == e.TargetUserID
}

// MusicRecord attributes an artist to a cast shared by a user.
type MusicRecord struct {
	UserID     int64  `json:"user_id"`
	ArtistName string `json:"artist_name"`
	CastID     string `json:"cast_id"`

	// Title is the track or album title when it was extracted.
	Title string `json:"title,omitempty"`

	// Platform is the streaming platform the link pointed at (spotify, youtube, ...).
	Platform string `json:"platform,omitempty"`
}

// Complete reports whether the record carries a user, an artist and a cast.
func (r MusicRecord) Complete() bool {
	return r.UserID != 0 && r.ArtistName != "" && r.CastID != ""
}

// EdgeQuery filters interaction edges fetched from a data source.
type EdgeQuery struct {
	// EdgeTypes restricts the result to the given types. Empty means all types.
	EdgeTypes []EdgeType `json:"edge_types,omitempty"`

	// Start and End bound CreatedAt inclusively. Zero values leave the side open.
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	// CastIDs restricts the result to interactions on the given casts.
	CastIDs []string `json:"cast_ids,omitempty"`

	// Limit caps the number of rows. Zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// HasDateRange reports whether either bound of the date range is set.
func (q EdgeQuery) HasDateRange() bool {
	return !q.Start.IsZero() || !q.End.IsZero()
}

// PostsQuery selects AUTHORED edges created within [start, end].
func PostsQuery(start, end time.Time, limit int) EdgeQuery {
	return EdgeQuery{
		EdgeTypes: []EdgeType{EdgeTypeAuthored},
		Start:     start,
		End:       end,
		Limit:     limit,
	}
}

// EngagementsQuery selects engagement edges on the given casts, regardless of age.
func EngagementsQuery(castIDs []string, limit int) EdgeQuery {
	return EdgeQuery{
		EdgeTypes: append([]EdgeType(nil), EngagementEdgeTypes...),
		CastIDs:   castIDs,
		Limit:     limit,
	}
}
