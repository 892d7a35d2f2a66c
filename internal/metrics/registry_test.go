package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.NotNil(t, r.NarrativeRequestsTotal)
	assert.NotNil(t, r.EngineState)
	assert.NotNil(t, r.Handler())

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRecordNarrative(t *testing.T) {
	r := NewRegistry()
	r.RecordNarrative("summary", "model", 200*time.Millisecond)
	r.RecordNarrative("summary", "fallback", time.Second)
	r.RecordNarrative("summary", "fallback", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.NarrativeRequestsTotal.WithLabelValues("summary", "model")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.NarrativeRequestsTotal.WithLabelValues("summary", "fallback")))
}

func TestRecordTransition_MovesStateGauge(t *testing.T) {
	r := NewRegistry()
	r.RecordTransition("IDLE", "DETECTING")
	r.RecordTransition("DETECTING", "ALERT")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.EngineState.WithLabelValues("ALERT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.EngineState.WithLabelValues("DETECTING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.EngineTransitionsTotal.WithLabelValues("IDLE", "DETECTING")))
}

func TestRecordSavingAndStore(t *testing.T) {
	r := NewRegistry()
	r.RecordSaving(120)
	r.RecordSaving(-5)
	r.RecordStoreEvent("autonomous-save", "local", 7)
	r.RecordJournal("narrative", nil)
	r.RecordJournal("narrative", errors.New("down"))

	assert.Equal(t, 120.0, testutil.ToFloat64(r.BudgetSavedTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.StoreVersion))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.JournalWritesTotal.WithLabelValues("narrative", "error")))
}
