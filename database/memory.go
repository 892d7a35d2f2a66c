package database

import (
	"context"
	"sync"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/model"
)

// MemoryJournal keeps the most recent entries per collection in process.
// It is used when no ArangoDB URL is configured.
type MemoryJournal struct {
	mu            sync.RWMutex
	capacity      int
	narratives    []model.NarrativeArtifact
	interventions []model.InterventionRecord
	events        []store.Event
	observer      Observer
}

// NewMemoryJournal keeps at most capacity entries per collection
func NewMemoryJournal(capacity int, observer Observer) *MemoryJournal {
	if capacity <= 0 {
		capacity = 500
	}
	return &MemoryJournal{capacity: capacity, observer: observer}
}

func appendCapped[T any](rows []T, v T, capacity int) []T {
	rows = append(rows, v)
	if len(rows) > capacity {
		rows = append(rows[:0:0], rows[len(rows)-capacity:]...)
	}
	return rows
}

// newest first, at most limit
func latest[T any](rows []T, limit int) []T {
	limit = clampLimit(limit)
	if limit > len(rows) {
		limit = len(rows)
	}
	out := make([]T, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out
}

func (m *MemoryJournal) record(collection string) {
	if m.observer != nil {
		m.observer.RecordJournal(collection, nil)
	}
}

// SaveNarrative appends an artifact
func (m *MemoryJournal) SaveNarrative(_ context.Context, a model.NarrativeArtifact) error {
	m.mu.Lock()
	m.narratives = appendCapped(m.narratives, a, m.capacity)
	m.mu.Unlock()
	m.record(CollectionNarrative)
	return nil
}

// SaveIntervention appends a cycle outcome
func (m *MemoryJournal) SaveIntervention(_ context.Context, r model.InterventionRecord) error {
	m.mu.Lock()
	m.interventions = appendCapped(m.interventions, r, m.capacity)
	m.mu.Unlock()
	m.record(CollectionIntervention)
	return nil
}

// SaveKPIEvent appends a store event
func (m *MemoryJournal) SaveKPIEvent(_ context.Context, e store.Event) error {
	m.mu.Lock()
	m.events = appendCapped(m.events, e, m.capacity)
	m.mu.Unlock()
	m.record(CollectionKPIEvent)
	return nil
}

// RecentNarratives lists artifacts, optionally of one kind
func (m *MemoryJournal) RecentNarratives(_ context.Context, kind model.NarrativeKind, limit int) ([]model.NarrativeArtifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if kind == "" {
		return latest(m.narratives, limit), nil
	}
	var matching []model.NarrativeArtifact
	for _, a := range m.narratives {
		if a.Kind == kind {
			matching = append(matching, a)
		}
	}
	return latest(matching, limit), nil
}

// RecentInterventions lists cycle outcomes
func (m *MemoryJournal) RecentInterventions(_ context.Context, limit int) ([]model.InterventionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return latest(m.interventions, limit), nil
}

// RecentKPIEvents lists applied store events
func (m *MemoryJournal) RecentKPIEvents(_ context.Context, limit int) ([]store.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return latest(m.events, limit), nil
}
