// Package store keeps the dashboard KPI state behind a pure reducer. Every
// change arrives as a tagged event so concurrent writers never race on a
// shared slice.
package store

import (
	"errors"
	"time"

	"github.com/aishield/shield-backend/model"
)

// ErrInvalidEvent is returned for events the reducer refuses
var ErrInvalidEvent = errors.New("invalid store event")

// EventType tags a store event
type EventType string

// Event types
const (
	EventTimeRangeChanged EventType = "time-range-changed"
	EventAutonomousSave   EventType = "autonomous-save"
	EventScenarioChanged  EventType = "scenario-changed"
	EventSummaryUpdated   EventType = "summary-updated"
)

// Event is one state change
type Event struct {
	ID        string                   `json:"id"`
	Type      EventType                `json:"type"`
	Origin    string                   `json:"origin"`
	At        time.Time                `json:"at"`
	TimeRange model.TimeRange          `json:"time_range,omitempty"`
	KPIs      []model.KPI              `json:"kpis,omitempty"`
	Amount    float64                  `json:"amount,omitempty"`
	Scenario  *model.ScenarioInput     `json:"scenario,omitempty"`
	Summary   *model.NarrativeArtifact `json:"summary,omitempty"`
}

// TimeRangeChanged carries the rescaled KPIs of the newly selected range
func TimeRangeChanged(r model.TimeRange, kpis []model.KPI) Event {
	return Event{Type: EventTimeRangeChanged, TimeRange: r, KPIs: kpis}
}

// AutonomousSave credits an applied intervention
func AutonomousSave(amount float64) Event {
	return Event{Type: EventAutonomousSave, Amount: amount}
}

// ScenarioChanged records new what-if parameters
func ScenarioChanged(in model.ScenarioInput) Event {
	return Event{Type: EventScenarioChanged, Scenario: &in}
}

// SummaryUpdated stores the executive summary produced for range r
func SummaryUpdated(r model.TimeRange, a model.NarrativeArtifact) Event {
	return Event{Type: EventSummaryUpdated, TimeRange: r, Summary: &a}
}
