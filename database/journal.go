package database

import (
	"context"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/model"
)

// Journal records what the dashboard produced so it can be browsed later
type Journal interface {
	SaveNarrative(ctx context.Context, a model.NarrativeArtifact) error
	SaveIntervention(ctx context.Context, r model.InterventionRecord) error
	SaveKPIEvent(ctx context.Context, e store.Event) error

	// Recent* return newest first. An empty kind matches every narrative.
	RecentNarratives(ctx context.Context, kind model.NarrativeKind, limit int) ([]model.NarrativeArtifact, error)
	RecentInterventions(ctx context.Context, limit int) ([]model.InterventionRecord, error)
	RecentKPIEvents(ctx context.Context, limit int) ([]store.Event, error)
}

// Observer is told about every journal write
type Observer interface {
	RecordJournal(collection string, err error)
}

// DefaultHistoryLimit caps history queries without an explicit limit
const DefaultHistoryLimit = 50

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultHistoryLimit
	}
	return limit
}
