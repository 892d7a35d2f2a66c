// Package services wires the dashboard components into the operations the
// REST, GraphQL and terminal surfaces call.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aishield/shield-backend/database"
	"github.com/aishield/shield-backend/internal/autonomous"
	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/model"
	"go.uber.org/zap"
)

// Panel names
const (
	PanelSummary    = "summary"
	PanelComparison = "comparison"
	PanelSimulation = "simulation"
)

// Request validation errors
var (
	ErrEmptyMessage        = errors.New("message is empty")
	ErrInvalidImageRequest = errors.New("invalid image request")
)

// Deps are the collaborators of a Dashboard
type Deps struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Service narrative.Service
	Clock   clock.Clock
	Source  simulation.Source
	Journal database.Journal
	Metrics *metrics.Registry
	Logger  *zap.Logger
}

// Dashboard owns the live state of one dashboard instance
type Dashboard struct {
	cfg     config.Config
	catalog *catalog.Catalog
	clock   clock.Clock
	rng     simulation.Source
	journal database.Journal
	metrics *metrics.Registry
	logger  *zap.Logger

	store    *store.Store
	adapter  *narrative.Adapter
	engine   *autonomous.Engine
	feed     *catalog.Feed
	sessions *narrative.Sessions
	panels   map[string]*narrative.Panel

	mu     sync.Mutex
	pulse  map[model.TimeRange][]model.MetricPoint
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a dashboard. Panels issue their requests as children of ctx.
func New(ctx context.Context, deps Deps) *Dashboard {
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Source == nil {
		deps.Source = simulation.NewSource()
	}
	if deps.Journal == nil {
		var obs database.Observer
		if deps.Metrics != nil {
			obs = deps.Metrics
		}
		deps.Journal = database.NewMemoryJournal(0, obs)
	}
	if deps.Service == nil {
		deps.Service = narrative.Offline{}
	}
	cfg := deps.Config

	d := &Dashboard{
		cfg:      cfg,
		catalog:  deps.Catalog,
		clock:    deps.Clock,
		rng:      deps.Source,
		journal:  deps.Journal,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		sessions: narrative.NewSessions(256),
		pulse:    make(map[model.TimeRange][]model.MetricPoint),
	}

	d.store = store.New(store.Initial(), cfg.InstanceID, deps.Logger)
	d.store.OnApplied(d.onApplied)

	d.adapter = narrative.NewAdapter(deps.Service, cfg.Models, cfg.NarrativeTimeout, deps.Logger)
	d.adapter.SetJournal(deps.Journal)

	d.engine = autonomous.New(cfg.Engine, deps.Clock, deps.Source, d.adapter, d.creditSaving, deps.Logger)
	d.engine.SetJournal(deps.Journal)

	d.feed = catalog.NewFeed(deps.Catalog.Incidents)

	if deps.Metrics != nil {
		d.adapter.SetObserver(deps.Metrics)
		d.engine.SetObserver(deps.Metrics)
		d.feed.OnRotate(deps.Metrics.FeedRotationsTotal.Inc)
	}

	d.panels = map[string]*narrative.Panel{
		PanelSummary:    narrative.NewPanel(ctx, PanelSummary, deps.Clock, cfg.Debounce.Default, cfg.NarrativeTimeout, deps.Logger),
		PanelComparison: narrative.NewPanel(ctx, PanelComparison, deps.Clock, cfg.Debounce.Comparison, cfg.NarrativeTimeout, deps.Logger),
		PanelSimulation: narrative.NewPanel(ctx, PanelSimulation, deps.Clock, cfg.Debounce.Simulation, cfg.NarrativeTimeout, deps.Logger),
	}
	return d
}

// Start runs the autonomous engine and the incident feed until Stop or ctx ends
func (d *Dashboard) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	d.engine.Start(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.feed.Run(ctx, d.clock, d.cfg.FeedInterval, d.logger)
	}()

	d.RefreshSummaryAsync()
}

// Stop halts the engine and the feed and waits for panel requests in flight
func (d *Dashboard) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	d.engine.Stop()
	d.wg.Wait()
	for _, p := range d.panels {
		p.Wait()
	}
}

// Store exposes the KPI store
func (d *Dashboard) Store() *store.Store { return d.store }

// Engine exposes the autonomous trigger
func (d *Dashboard) Engine() *autonomous.Engine { return d.engine }

// Feed exposes the incident feed
func (d *Dashboard) Feed() *catalog.Feed { return d.feed }

// Catalog exposes the reference tables
func (d *Dashboard) Catalog() *catalog.Catalog { return d.catalog }

// Adapter exposes the narrative adapter
func (d *Dashboard) Adapter() *narrative.Adapter { return d.adapter }

// Journal exposes the history journal
func (d *Dashboard) Journal() database.Journal { return d.journal }

// Panel returns a named narrative panel
func (d *Dashboard) Panel(name string) (*narrative.Panel, bool) {
	p, ok := d.panels[name]
	return p, ok
}

func (d *Dashboard) creditSaving(amount float64) error {
	_, err := d.store.Dispatch(store.AutonomousSave(amount))
	return err
}

func (d *Dashboard) onApplied(e store.Event, s store.State) {
	if d.metrics != nil {
		d.metrics.RecordStoreEvent(string(e.Type), e.Origin, s.Version)
	}
	if e.Type == store.EventSummaryUpdated {
		// artifacts are journaled by the adapter already
		return
	}
	if err := d.journal.SaveKPIEvent(context.Background(), e); err != nil {
		d.logger.Warn("Failed to journal KPI event", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

// Overview is the main dashboard view
type Overview struct {
	Version   uint64               `json:"version"`
	TimeRange model.TimeRange      `json:"time_range"`
	KPIs      []model.KPI          `json:"kpis"`
	Summary   narrative.PanelState `json:"summary"`
	Saved     float64              `json:"autonomous_saved"`
}

// Overview returns the KPIs of the selected range with autonomous savings merged
func (d *Dashboard) Overview() Overview {
	s := d.store.State()
	// the store drops summaries of other ranges; the panel keeps only loading state
	summary := d.panels[PanelSummary].Snapshot()
	summary.Artifact = s.Summary
	return Overview{
		Version:   s.Version,
		TimeRange: s.TimeRange,
		KPIs:      s.KPIs(),
		Summary:   summary,
		Saved:     s.AutonomousSaved,
	}
}

// SetTimeRange rescales the KPIs, regenerates the pulse series and schedules a new summary
func (d *Dashboard) SetTimeRange(r model.TimeRange) (Overview, error) {
	r, err := model.ParseTimeRange(string(r))
	if err != nil {
		return Overview{}, err
	}
	if _, err := d.store.Dispatch(store.TimeRangeChanged(r, simulation.KPIsForRange(r, d.rng))); err != nil {
		return Overview{}, err
	}

	points := simulation.GeneratePulse(d.rng, r, d.clock.Now())
	d.mu.Lock()
	d.pulse[r] = points
	d.mu.Unlock()

	d.RefreshSummaryAsync()
	return d.Overview(), nil
}

func (d *Dashboard) summaryRequest() narrative.Request {
	s := d.store.State()
	r, kpis := s.TimeRange, s.KPIs()
	return func(ctx context.Context) model.NarrativeArtifact {
		art := d.adapter.Summary(ctx, r, kpis)
		if _, err := d.store.Dispatch(store.SummaryUpdated(r, art)); err != nil {
			d.logger.Warn("Summary not stored", zap.Error(err))
		}
		return art
	}
}

// RefreshSummaryAsync debounces a summary refresh for the current range
func (d *Dashboard) RefreshSummaryAsync() {
	d.panels[PanelSummary].Trigger(d.summaryRequest())
}

// RefreshSummary produces a summary for the current range and waits for it
func (d *Dashboard) RefreshSummary(ctx context.Context) narrative.PanelState {
	return d.panels[PanelSummary].Refresh(ctx, d.summaryRequest())
}

// PulseView is the defense pulse chart and its digest
type PulseView struct {
	TimeRange model.TimeRange     `json:"time_range"`
	Points    []model.MetricPoint `json:"points"`
	Story     model.PulseStory    `json:"story"`
}

// Pulse returns the pulse series of r, generating it on first use
func (d *Dashboard) Pulse(r model.TimeRange) PulseView {
	d.mu.Lock()
	points, ok := d.pulse[r]
	if !ok {
		points = simulation.GeneratePulse(d.rng, r, d.clock.Now())
		d.pulse[r] = points
	}
	d.mu.Unlock()

	out := make([]model.MetricPoint, len(points))
	copy(out, points)
	return PulseView{TimeRange: r, Points: out, Story: simulation.SummarizePulse(out)}
}

// PulseAction asks for the trend action narrative of the pulse series of r
func (d *Dashboard) PulseAction(ctx context.Context, r model.TimeRange) model.NarrativeArtifact {
	view := d.Pulse(r)
	return d.adapter.TrendAction(ctx, simulation.TrendSummary(r, view.Story))
}

// ScenarioView is the what-if simulator state
type ScenarioView struct {
	Input  model.ScenarioInput    `json:"input"`
	Result model.SimulationResult `json:"result"`
	Brief  narrative.PanelState   `json:"brief"`
}

// Scenario recomputes the simulation of the stored scenario
func (d *Dashboard) Scenario() (ScenarioView, error) {
	in := d.store.State().Scenario
	res, err := simulation.Simulate(in, simulation.RandomVariance(d.rng))
	if err != nil {
		return ScenarioView{}, err
	}
	return ScenarioView{Input: in, Result: res, Brief: d.panels[PanelSimulation].Snapshot()}, nil
}

// SetScenario validates and stores new parameters, recomputes the projection
// and schedules a debounced simulation brief
func (d *Dashboard) SetScenario(in model.ScenarioInput) (ScenarioView, error) {
	if err := simulation.ValidateScenario(in); err != nil {
		return ScenarioView{}, err
	}
	if _, err := d.store.Dispatch(store.ScenarioChanged(in)); err != nil {
		return ScenarioView{}, err
	}
	d.panels[PanelSimulation].Trigger(func(ctx context.Context) model.NarrativeArtifact {
		art, _ := d.adapter.SimulationBrief(ctx, in)
		return art
	})
	return d.Scenario()
}

// ComparisonView is the comparative universe panel
type ComparisonView struct {
	Comparison model.Comparison     `json:"comparison"`
	Insight    narrative.PanelState `json:"insight"`
}

// Compare computes a period over period delta and schedules its insight
func (d *Dashboard) Compare(period model.ComparisonPeriod, metric model.ComparisonMetric) (ComparisonView, error) {
	c, err := simulation.Compare(period, metric, d.rng)
	if err != nil {
		return ComparisonView{}, err
	}
	d.panels[PanelComparison].Trigger(func(ctx context.Context) model.NarrativeArtifact {
		art, _ := d.adapter.ComparisonInsight(ctx, c)
		return art
	})
	return ComparisonView{Comparison: c, Insight: d.panels[PanelComparison].Snapshot()}, nil
}

// Budget is the budget universe view
type Budget struct {
	Platforms []model.PlatformSpend     `json:"platforms"`
	Matrix    []model.BudgetMatrixPoint `json:"matrix"`
	CPC       model.CPCEfficiency       `json:"cpc"`
}

// Budget scales platform spend to the selected range
func (d *Dashboard) Budget() Budget {
	r := d.store.State().TimeRange
	return Budget{
		Platforms: simulation.PlatformBreakdown(d.catalog.Platforms, r),
		Matrix:    d.catalog.BudgetMatrix,
		CPC:       simulation.CPC(d.rng),
	}
}

// Reputation is the reputation radar view
type Reputation struct {
	Radar     []model.RadarAxis     `json:"radar"`
	Sentiment []model.SentimentItem `json:"sentiment"`
	Weak      bool                  `json:"weak"`
}

// Reputation returns the radar of the selected range
func (d *Dashboard) Reputation() Reputation {
	radar := simulation.ReputationRadar(d.store.State().TimeRange)
	return Reputation{Radar: radar, Sentiment: d.catalog.SentimentFeed, Weak: simulation.HasWeakAxis(radar)}
}

// Narrate runs any text or JSON call site. Missing context is filled from the
// live dashboard state the way each panel would build it.
func (d *Dashboard) Narrate(ctx context.Context, kind model.NarrativeKind, in narrative.Input) (model.NarrativeArtifact, error) {
	s := d.store.State()
	if in.TimeRange == "" {
		in.TimeRange = s.TimeRange
	}
	if strings.TrimSpace(in.Context) == "" {
		in.Context = d.defaultContext(kind, in.TimeRange)
	}
	if kind == model.KindSummary && len(in.KPIs) == 0 {
		in.KPIs = s.KPIs()
	}
	if kind == model.KindSimulationBrief && in.Scenario == (model.ScenarioInput{}) {
		in.Scenario = s.Scenario
	}
	if kind == model.KindActionPlan && in.ContextName == "" {
		in.ContextName = "Genel Bakış"
	}
	if kind == model.KindIntervention && in.Trigger == "" {
		in.Trigger = model.TriggerTypes[int(d.rng.Float64()*float64(len(model.TriggerTypes)))%len(model.TriggerTypes)]
	}
	return d.adapter.Invoke(ctx, kind, in)
}

func (d *Dashboard) defaultContext(kind model.NarrativeKind, r model.TimeRange) string {
	switch kind {
	case model.KindTrustAnalysis:
		return d.catalog.TrustSummary()
	case model.KindTrendAction:
		view := d.Pulse(r)
		return simulation.TrendSummary(r, view.Story)
	case model.KindBudgetStrategy:
		return simulation.PlatformSummary(simulation.PlatformBreakdown(d.catalog.Platforms, r))
	case model.KindReputationAnalysis:
		parts := make([]string, 0, len(d.catalog.SentimentFeed))
		for _, item := range d.catalog.SentimentFeed {
			parts = append(parts, fmt.Sprintf("%s %s: %s", item.Platform, item.Sentiment, item.Text))
		}
		return strings.Join(parts, "; ")
	case model.KindTrafficAnalysis, model.KindTrafficStrategy:
		parts := make([]string, 0, len(d.catalog.TrafficActors))
		for _, a := range d.catalog.TrafficActors {
			parts = append(parts, fmt.Sprintf("%s (%s, hasar %d, %s)", a.Name, a.Type, a.DamagePotential, a.Volume))
		}
		return strings.Join(parts, ", ")
	case model.KindIncidentForensics:
		if len(d.catalog.DefenseLog) > 0 {
			inc := d.catalog.DefenseLog[0]
			return fmt.Sprintf("%s (%s, %s, tehdit %d): %s", inc.Title, inc.Type, inc.Channel, inc.ThreatScore, inc.Description)
		}
	case model.KindRecoveryStrategy:
		return "Marka güvenliği ihlali"
	case model.KindActionPlan:
		var b strings.Builder
		for i, k := range d.store.State().KPIs() {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s%v%s (%s)", k.Title, k.Prefix, k.Value, k.Suffix, k.Trend)
		}
		return b.String()
	}
	return ""
}

// Activate deploys the pending intervention
func (d *Dashboard) Activate() (autonomous.Snapshot, error) { return d.engine.Activate() }

// Ignore dismisses the pending intervention
func (d *Dashboard) Ignore() (autonomous.Snapshot, error) { return d.engine.Ignore() }

// Chat sends one Guardian turn. An unknown session id starts a new session.
func (d *Dashboard) Chat(ctx context.Context, sessionID, message string) (model.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return model.ChatResponse{}, ErrEmptyMessage
	}
	session := d.sessions.Get(sessionID)
	reply, err := d.adapter.Chat(ctx, session, message)
	if err != nil {
		return model.ChatResponse{SessionID: session.ID}, err
	}
	return model.ChatResponse{SessionID: session.ID, Reply: reply, Display: narrative.DisplayText(reply)}, nil
}

// AnalyzeImage runs a threat analysis over an uploaded image
func (d *Dashboard) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (model.NarrativeArtifact, error) {
	return d.adapter.AnalyzeImage(ctx, data, mimeType, prompt)
}

// GenerateImage renders a defense visual
func (d *Dashboard) GenerateImage(ctx context.Context, prompt string, size model.ImageSize) (narrative.GeneratedImage, error) {
	if size != "" && !size.Valid() {
		return narrative.GeneratedImage{}, fmt.Errorf("%w: unsupported size %q", ErrInvalidImageRequest, size)
	}
	if strings.TrimSpace(prompt) == "" {
		return narrative.GeneratedImage{}, fmt.Errorf("%w: prompt is empty", ErrInvalidImageRequest)
	}
	return d.adapter.GenerateImage(ctx, prompt, size)
}

// History is the journal view
type History struct {
	Narratives    []model.NarrativeArtifact  `json:"narratives"`
	Interventions []model.InterventionRecord `json:"interventions"`
	Events        []store.Event              `json:"events"`
}

// History reads the latest journal entries
func (d *Dashboard) History(ctx context.Context, kind model.NarrativeKind, limit int) (History, error) {
	var h History
	var err error
	if h.Narratives, err = d.journal.RecentNarratives(ctx, kind, limit); err != nil {
		return h, err
	}
	if h.Interventions, err = d.journal.RecentInterventions(ctx, limit); err != nil {
		return h, err
	}
	if h.Events, err = d.journal.RecentKPIEvents(ctx, limit); err != nil {
		return h, err
	}
	return h, nil
}

// WaitIdle blocks until no panel request is in flight. Used by tests and the simulate command.
func (d *Dashboard) WaitIdle(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		for _, p := range d.panels {
			p.Wait()
		}
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
