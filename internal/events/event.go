// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/curatorgraph/internal/analysis"
)

// Metadata keys set on every published message.
const (
	MetadataRunID     = "run_id"
	MetadataEventType = "event_type"
)

// EventTypeRunCompleted identifies RunCompleted payloads.
const EventTypeRunCompleted = "run_completed"

// RunCompleted announces a finished analysis run.
type RunCompleted struct {
	EventID     string          `json:"event_id"`
	RunID       string          `json:"run_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	DurationMS  int64           `json:"duration_ms"`
	Counts      analysis.Counts `json:"counts"`

	Communities    int     `json:"communities"`
	Modularity     float64 `json:"modularity"`
	ColdStartUsers int     `json:"cold_start_users"`

	// TopCurator is the highest PageRank user of the run. Empty when the
	// social graph had no nodes.
	TopCurator string `json:"top_curator,omitempty"`
}

// NewRunCompleted builds the event for r with a fresh event id.
func NewRunCompleted(r *analysis.Report) RunCompleted {
	ev := RunCompleted{
		EventID:        uuid.New().String(),
		RunID:          r.RunID,
		StartedAt:      r.StartedAt,
		CompletedAt:    r.CompletedAt,
		DurationMS:     r.DurationMS,
		Counts:         r.Counts,
		Communities:    r.Communities.Count,
		Modularity:     r.Communities.Modularity,
		ColdStartUsers: r.ColdStart.Count,
	}
	if len(r.TopPageRank) > 0 {
		ev.TopCurator = r.TopPageRank[0].Key
	}
	return ev
}

// toMessage serializes ev into a Watermill message keyed by the event id.
func (ev RunCompleted) toMessage() (*message.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal run event: %w", err)
	}
	msg := message.NewMessage(ev.EventID, data)
	msg.Metadata.Set(MetadataRunID, ev.RunID)
	msg.Metadata.Set(MetadataEventType, EventTypeRunCompleted)
	return msg, nil
}

// DecodeRunCompleted parses the payload of a run-completed message.
func DecodeRunCompleted(msg *message.Message) (RunCompleted, error) {
	var ev RunCompleted
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return RunCompleted{}, fmt.Errorf("decode run event %s: %w", msg.UUID, err)
	}
	return ev, nil
}
