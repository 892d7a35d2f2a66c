package database

import (
	"context"
	"fmt"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/model"
	"github.com/aishield/shield-backend/util"
	"github.com/arangodb/go-driver/v2/arangodb"
)

type narrativeDoc struct {
	Key string `json:"_key"`
	model.NarrativeArtifact
}

type interventionDoc struct {
	Key string `json:"_key"`
	model.InterventionRecord
}

type kpiEventDoc struct {
	Key string `json:"_key"`
	store.Event
}

// ArangoJournal stores the journal in ArangoDB collections
type ArangoJournal struct {
	db       *DBConnection
	observer Observer
}

// NewArangoJournal wraps an initialized connection
func NewArangoJournal(db *DBConnection, observer Observer) *ArangoJournal {
	return &ArangoJournal{db: db, observer: observer}
}

func (j *ArangoJournal) create(ctx context.Context, collection string, doc any) error {
	col, ok := j.db.Collections[collection]
	if !ok {
		return fmt.Errorf("collection %s is not initialized", collection)
	}
	_, err := col.CreateDocument(ctx, doc)
	if j.observer != nil {
		j.observer.RecordJournal(collection, err)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s document: %w", collection, err)
	}
	return nil
}

// SaveNarrative stores an artifact keyed by its id
func (j *ArangoJournal) SaveNarrative(ctx context.Context, a model.NarrativeArtifact) error {
	return j.create(ctx, CollectionNarrative, narrativeDoc{Key: util.SanitizeKey(a.ID), NarrativeArtifact: a})
}

// SaveIntervention stores one cycle outcome
func (j *ArangoJournal) SaveIntervention(ctx context.Context, r model.InterventionRecord) error {
	return j.create(ctx, CollectionIntervention, interventionDoc{Key: util.SanitizeKey(r.ID), InterventionRecord: r})
}

// SaveKPIEvent stores an applied store event
func (j *ArangoJournal) SaveKPIEvent(ctx context.Context, e store.Event) error {
	return j.create(ctx, CollectionKPIEvent, kpiEventDoc{Key: util.SanitizeKey(e.ID), Event: e})
}

// RecentNarratives lists artifacts, optionally of one kind
func (j *ArangoJournal) RecentNarratives(ctx context.Context, kind model.NarrativeKind, limit int) ([]model.NarrativeArtifact, error) {
	query := `
		FOR n IN narrative
			FILTER @kind == "" OR n.kind == @kind
			SORT n.created_at DESC
			LIMIT @limit
			RETURN UNSET(n, "_key", "_id", "_rev")
	`
	bindVars := map[string]interface{}{
		"kind":  string(kind),
		"limit": clampLimit(limit),
	}
	return queryAll[model.NarrativeArtifact](ctx, j.db.Database, query, bindVars)
}

// RecentInterventions lists cycle outcomes
func (j *ArangoJournal) RecentInterventions(ctx context.Context, limit int) ([]model.InterventionRecord, error) {
	query := `
		FOR i IN intervention
			SORT i.at DESC
			LIMIT @limit
			RETURN UNSET(i, "_key", "_id", "_rev")
	`
	return queryAll[model.InterventionRecord](ctx, j.db.Database, query, map[string]interface{}{"limit": clampLimit(limit)})
}

// RecentKPIEvents lists applied store events
func (j *ArangoJournal) RecentKPIEvents(ctx context.Context, limit int) ([]store.Event, error) {
	query := `
		FOR e IN kpi_event
			SORT e.at DESC
			LIMIT @limit
			RETURN UNSET(e, "_key", "_id", "_rev")
	`
	return queryAll[store.Event](ctx, j.db.Database, query, map[string]interface{}{"limit": clampLimit(limit)})
}

func queryAll[T any](ctx context.Context, db arangodb.Database, query string, bindVars map[string]interface{}) ([]T, error) {
	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	out := []T{}
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
