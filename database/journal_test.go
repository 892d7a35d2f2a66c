package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	writes map[string]int
}

func (c *countingObserver) RecordJournal(collection string, err error) {
	if err == nil {
		c.writes[collection]++
	}
}

func TestMemoryJournal_NewestFirstAndCapped(t *testing.T) {
	obs := &countingObserver{writes: map[string]int{}}
	j := NewMemoryJournal(3, obs)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.SaveIntervention(ctx, model.InterventionRecord{ID: fmt.Sprint(i), Cycle: uint64(i)}))
	}

	got, err := j.RecentInterventions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"4", "3", "2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 5, obs.writes[CollectionIntervention])

	got, err = j.RecentInterventions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "4", got[0].ID)
}

func TestMemoryJournal_NarrativeKindFilter(t *testing.T) {
	j := NewMemoryJournal(0, nil)
	ctx := context.Background()

	require.NoError(t, j.SaveNarrative(ctx, model.NarrativeArtifact{ID: "a", Kind: model.KindSummary}))
	require.NoError(t, j.SaveNarrative(ctx, model.NarrativeArtifact{ID: "b", Kind: model.KindActionPlan}))
	require.NoError(t, j.SaveNarrative(ctx, model.NarrativeArtifact{ID: "c", Kind: model.KindSummary}))

	all, err := j.RecentNarratives(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	summaries, err := j.RecentNarratives(ctx, model.KindSummary, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "c", summaries[0].ID)

	none, err := j.RecentNarratives(ctx, model.KindChat, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryJournal_KPIEvents(t *testing.T) {
	j := NewMemoryJournal(10, nil)
	ctx := context.Background()

	e := store.AutonomousSave(120)
	e.ID = "evt-1"
	require.NoError(t, j.SaveKPIEvent(ctx, e))

	got, err := j.RecentKPIEvents(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, store.EventAutonomousSave, got[0].Type)
	assert.Equal(t, 120.0, got[0].Amount)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, clampLimit(0))
	assert.Equal(t, DefaultHistoryLimit, clampLimit(-1))
	assert.Equal(t, DefaultHistoryLimit, clampLimit(10_000))
	assert.Equal(t, 7, clampLimit(7))
}
