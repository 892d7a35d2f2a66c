package services

import (
	"context"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/autonomous"
	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newTestDashboard(t *testing.T) (*Dashboard, *clock.Fake) {
	t.Helper()
	cfg := config.Default()
	cfg.InstanceID = "test"
	cfg.FeedInterval = time.Hour

	cat, err := catalog.Default()
	require.NoError(t, err)

	fake := clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	d := New(context.Background(), Deps{
		Config:  cfg,
		Catalog: cat,
		Clock:   fake,
		Source:  fixedSource(0.5),
		Logger:  zap.NewNop(),
	})
	t.Cleanup(d.Stop)
	return d, fake
}

func fraudValue(t *testing.T, kpis []model.KPI) float64 {
	t.Helper()
	k, ok := model.FindKPI(kpis, model.KPIFraud)
	require.True(t, ok)
	return k.Value
}

func TestDashboard_AutonomousSaveSurvivesRangeChange(t *testing.T) {
	d, fake := newTestDashboard(t)
	d.Start(context.Background())

	// 15s + 0.5 * 30s
	fake.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return d.Engine().Snapshot().State == autonomous.Alert
	}, 2*time.Second, 5*time.Millisecond)

	snap := d.Engine().Snapshot()
	require.NotNil(t, snap.Intervention)
	assert.Equal(t, 120.0, snap.Intervention.SavedAmount)

	_, err := d.Activate()
	require.NoError(t, err)
	fake.Advance(2 * time.Second)
	assert.Equal(t, autonomous.Secured, d.Engine().Snapshot().State)
	assert.Equal(t, 120.0, d.Store().State().AutonomousSaved)

	view, err := d.SetTimeRange(model.TimeRangeLast30D)
	require.NoError(t, err)
	base := fraudValue(t, simulation.KPIsForRange(model.TimeRangeLast30D, fixedSource(0.5)))
	assert.Equal(t, base+120, fraudValue(t, view.KPIs))
	assert.Equal(t, model.TimeRangeLast30D, view.TimeRange)

	fake.Advance(8 * time.Second)
	assert.Equal(t, autonomous.Idle, d.Engine().Snapshot().State)

	var hist History
	require.Eventually(t, func() bool {
		var err error
		hist, err = d.History(context.Background(), "", 0)
		return err == nil && len(hist.Interventions) == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t,
		[]model.InterventionOutcome{model.OutcomeProposed, model.OutcomeApplied},
		[]model.InterventionOutcome{hist.Interventions[0].Outcome, hist.Interventions[1].Outcome},
	)
	assert.NotEmpty(t, hist.Events)
}

func TestDashboard_SummaryDebouncedAcrossRangeSwitches(t *testing.T) {
	d, fake := newTestDashboard(t)

	_, err := d.SetTimeRange(model.TimeRangeLast24H)
	require.NoError(t, err)
	_, err = d.SetTimeRange(model.TimeRangeLast30D)
	require.NoError(t, err)
	assert.True(t, d.Overview().Summary.Loading)

	fake.Advance(800 * time.Millisecond)
	require.True(t, d.WaitIdle(2*time.Second))

	view := d.Overview()
	require.NotNil(t, view.Summary.Artifact)
	assert.Equal(t, uint64(1), view.Summary.Sequence, "a burst issues one request")
	assert.Equal(t, model.SourceFallback, view.Summary.Artifact.Source)
	require.NotNil(t, d.Store().State().Summary)
}

func TestDashboard_RangeChangeClearsSummary(t *testing.T) {
	d, _ := newTestDashboard(t)

	state := d.RefreshSummary(context.Background())
	require.NotNil(t, state.Artifact)
	require.NotNil(t, d.Store().State().Summary)

	view, err := d.SetTimeRange(model.TimeRangeLast24H)
	require.NoError(t, err)
	assert.Nil(t, d.Store().State().Summary)
	assert.Nil(t, view.Summary.Artifact)
	assert.Nil(t, d.Overview().Summary.Artifact, "previous range summary must not resurface")
}

func TestDashboard_Scenario(t *testing.T) {
	d, fake := newTestDashboard(t)

	_, err := d.SetScenario(model.ScenarioInput{BudgetScale: 9})
	assert.ErrorIs(t, err, simulation.ErrInvalidScenario)

	in := model.ScenarioInput{
		BudgetScale:     1,
		AttackIntensity: model.IntensityLow,
		ProtectionLevel: model.ProtectionMaximum,
		PlatformMix:     model.PlatformMetaOnly,
	}
	view, err := d.SetScenario(in)
	require.NoError(t, err)
	assert.Equal(t, in, d.Store().State().Scenario)
	assert.Len(t, view.Result.Points, 31)
	assert.True(t, view.Brief.Loading)

	fake.Advance(1200 * time.Millisecond)
	require.True(t, d.WaitIdle(2*time.Second))

	view, err = d.Scenario()
	require.NoError(t, err)
	require.NotNil(t, view.Brief.Artifact)
	assert.Equal(t, model.KindSimulationBrief, view.Brief.Artifact.Kind)
}

func TestDashboard_Compare(t *testing.T) {
	d, fake := newTestDashboard(t)

	view, err := d.Compare(model.PeriodMonth, model.MetricAttacks)
	require.NoError(t, err)
	assert.Equal(t, model.PeriodMonth, view.Comparison.Period)

	fake.Advance(600 * time.Millisecond)
	require.True(t, d.WaitIdle(2*time.Second))
	p, ok := d.Panel(PanelComparison)
	require.True(t, ok)
	require.NotNil(t, p.Snapshot().Artifact)

	_, err = d.Compare("DECADE", model.MetricBudget)
	assert.Error(t, err)
}

func TestDashboard_PulseIsCachedPerRange(t *testing.T) {
	d, _ := newTestDashboard(t)

	first := d.Pulse(model.TimeRangeLive)
	second := d.Pulse(model.TimeRangeLive)
	assert.Len(t, first.Points, 60)
	assert.Equal(t, first.Points, second.Points)
	assert.Len(t, d.Pulse(model.TimeRangeLast24H).Points, 24)

	art := d.PulseAction(context.Background(), model.TimeRangeLive)
	assert.Equal(t, model.KindTrendAction, art.Kind)
}

func TestDashboard_NarrateFillsContext(t *testing.T) {
	d, _ := newTestDashboard(t)
	ctx := context.Background()

	for _, kind := range []model.NarrativeKind{
		model.KindTrustAnalysis,
		model.KindBudgetStrategy,
		model.KindActionPlan,
		model.KindIncidentForensics,
		model.KindIntervention,
		model.KindSummary,
	} {
		art, err := d.Narrate(ctx, kind, narrative.Input{})
		require.NoError(t, err, kind)
		assert.Equal(t, kind, art.Kind)
		assert.NotEmpty(t, art.RawText)
	}

	_, err := d.Narrate(ctx, model.KindChat, narrative.Input{})
	assert.ErrorIs(t, err, narrative.ErrUnknownKind)
}

func TestDashboard_Tools(t *testing.T) {
	d, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := d.Chat(ctx, "", "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	resp, err := d.Chat(ctx, "", "Durum nedir?")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
	assert.NotEmpty(t, resp.SessionID)

	_, err = d.AnalyzeImage(ctx, nil, "image/png", "")
	assert.ErrorIs(t, err, narrative.ErrMissingImage)

	art, err := d.AnalyzeImage(ctx, []byte{0x89, 0x50}, "image/png", "")
	require.NoError(t, err)
	assert.Equal(t, "Görüntü analizi başarısız oldu.", art.RawText)

	_, err = d.GenerateImage(ctx, "kalkan", "8K")
	assert.Error(t, err)
	_, err = d.GenerateImage(ctx, "kalkan", model.ImageSize2K)
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
}

func TestDashboard_BudgetAndReputationFollowRange(t *testing.T) {
	d, _ := newTestDashboard(t)

	live := d.Budget()
	_, err := d.SetTimeRange(model.TimeRangeLast24H)
	require.NoError(t, err)
	day := d.Budget()

	require.Len(t, day.Platforms, len(live.Platforms))
	assert.Equal(t, live.Platforms[0].Spend*50, day.Platforms[0].Spend)
	assert.Len(t, d.Reputation().Radar, 5)
}
