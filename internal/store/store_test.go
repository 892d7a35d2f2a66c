package store

import (
	"sync"
	"testing"

	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func kpi(kpis []model.KPI, id string) model.KPI {
	k, _ := model.FindKPI(kpis, id)
	return k
}

func TestReduce_IsPure(t *testing.T) {
	s := Initial()
	before := Initial()

	_, err := Reduce(s, TimeRangeChanged(model.TimeRangeLast24H, []model.KPI{{ID: model.KPIFraud, Value: 1}}))
	require.NoError(t, err)
	_, err = Reduce(s, AutonomousSave(50))
	require.NoError(t, err)

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_AutonomousSaveSurvivesRangeChange(t *testing.T) {
	s := Initial()
	s, err := Reduce(s, AutonomousSave(120))
	require.NoError(t, err)

	fraud := kpi(s.KPIs(), model.KPIFraud)
	assert.Equal(t, 12570.0, fraud.Value)
	assert.Equal(t, "Otonom motor 120$ değerinde sızıntıyı anlık engelledi.", fraud.Insight)
	assert.Equal(t, 95.0, kpi(s.KPIs(), model.KPIScore).Value)

	rescaled := simulation.BaselineKPIs()
	for i := range rescaled {
		if rescaled[i].ID == model.KPIFraud {
			rescaled[i].Value = 300000
		}
	}
	s, err = Reduce(s, TimeRangeChanged(model.TimeRangeLast24H, rescaled))
	require.NoError(t, err)

	assert.Equal(t, 300120.0, kpi(s.KPIs(), model.KPIFraud).Value, "range refresh keeps the autonomous saving")
	assert.Equal(t, uint64(2), s.Version)
}

func TestReduce_ScoreCapsAt100(t *testing.T) {
	s := Initial()
	var err error
	for range 10 {
		s, err = Reduce(s, AutonomousSave(1))
		require.NoError(t, err)
	}
	assert.Equal(t, 100.0, kpi(s.KPIs(), model.KPIScore).Value)
	assert.Equal(t, 12460.0, kpi(s.KPIs(), model.KPIFraud).Value)
}

func TestReduce_StaleSummaryIgnored(t *testing.T) {
	s := Initial()
	s, err := Reduce(s, TimeRangeChanged(model.TimeRangeLast30D, simulation.BaselineKPIs()))
	require.NoError(t, err)

	next, err := Reduce(s, SummaryUpdated(model.TimeRangeLive, model.NarrativeArtifact{RawText: "old"}))
	require.NoError(t, err)
	assert.Nil(t, next.Summary)
	assert.Equal(t, s.Version, next.Version)

	next, err = Reduce(s, SummaryUpdated(model.TimeRangeLast30D, model.NarrativeArtifact{RawText: "fresh"}))
	require.NoError(t, err)
	require.NotNil(t, next.Summary)
	assert.Equal(t, "fresh", next.Summary.RawText)
}

func TestReduce_Rejects(t *testing.T) {
	s := Initial()
	bad := model.DefaultScenario()
	bad.BudgetScale = 9

	for name, e := range map[string]Event{
		"zero save":     AutonomousSave(0),
		"negative save": AutonomousSave(-4),
		"empty range":   {Type: EventTimeRangeChanged},
		"no summary":    {Type: EventSummaryUpdated},
		"unknown":       {Type: "weird"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Reduce(s, e)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}

	_, err := Reduce(s, ScenarioChanged(bad))
	assert.ErrorIs(t, err, simulation.ErrInvalidScenario)
}

func TestStore_ConcurrentSavesAllCounted(t *testing.T) {
	st := New(Initial(), "node-a", zap.NewNop())

	var applied int
	var mu sync.Mutex
	st.OnApplied(func(e Event, _ State) {
		mu.Lock()
		defer mu.Unlock()
		applied++
		assert.Equal(t, "node-a", e.Origin)
		assert.NotEmpty(t, e.ID)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = st.Dispatch(AutonomousSave(10))
		}()
		go func() {
			defer wg.Done()
			_, _ = st.Dispatch(TimeRangeChanged(model.TimeRangeLive, simulation.BaselineKPIs()))
		}()
	}
	wg.Wait()

	state := st.State()
	assert.Equal(t, uint64(100), state.Version)
	assert.Equal(t, 500.0, state.AutonomousSaved)
	assert.Equal(t, 12950.0, kpi(state.KPIs(), model.KPIFraud).Value)
	assert.Equal(t, 100, applied)
}

func TestStore_SubscribeGetsNewest(t *testing.T) {
	st := New(Initial(), "node-a", zap.NewNop())
	ch, cancel := st.Subscribe()
	defer cancel()

	_, err := st.Dispatch(AutonomousSave(5))
	require.NoError(t, err)
	_, err = st.Dispatch(AutonomousSave(7))
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, uint64(2), got.Version)

	_, err = st.Dispatch(AutonomousSave(-1))
	assert.Error(t, err)
	select {
	case <-ch:
		t.Fatal("rejected events must not notify")
	default:
	}
}

func TestStore_FanOutInVersionOrder(t *testing.T) {
	st := New(Initial(), "node-a", zap.NewNop())
	ch, cancel := st.Subscribe()
	defer cancel()

	var versions []uint64
	st.OnApplied(func(_ Event, s State) {
		// no lock: the store serializes listener calls
		versions = append(versions, s.Version)
	})

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.Dispatch(AutonomousSave(1))
		}()
	}
	wg.Wait()

	require.Len(t, versions, 200)
	for i, v := range versions {
		assert.Equal(t, uint64(i+1), v)
	}
	assert.Equal(t, uint64(200), (<-ch).Version, "subscriber holds the newest state")
}
