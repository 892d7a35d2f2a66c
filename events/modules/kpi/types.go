// Package kpi defines the Kafka contract for sharing applied KPI store events between instances.
package kpi

import (
	"time"

	"github.com/aishield/shield-backend/internal/store"
)

// Event contract constants
const (
	EventTypeApplied = "kpi.event.applied"
	SchemaVersion    = "1.0.0"
	// SchemaConstraint is the range of schema versions this build can decode
	SchemaConstraint = "^1"
)

// AppliedEvent wraps a store event that was applied on its origin instance.
type AppliedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	// Origin is the instance id that applied the event first
	Origin string `json:"origin"`

	// StoreVersion is the origin's state version after applying
	StoreVersion uint64 `json:"store_version"`

	Event store.Event `json:"event"`
}
