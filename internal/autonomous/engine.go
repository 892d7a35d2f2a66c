// Package autonomous runs the self-triggering intervention cycle:
// IDLE → DETECTING → ALERT → DEPLOYING → SECURED → IDLE.
package autonomous

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned for operator actions in the wrong state
var ErrInvalidTransition = errors.New("invalid engine transition")

// State is an engine state
type State string

// Engine states
const (
	Idle      State = "IDLE"
	Detecting State = "DETECTING"
	Alert     State = "ALERT"
	Deploying State = "DEPLOYING"
	Secured   State = "SECURED"
)

// Proposer produces an intervention for a trigger
type Proposer interface {
	Intervention(ctx context.Context, trigger model.TriggerType) (model.NarrativeArtifact, model.Intervention, error)
}

// Saver credits an applied saving to the KPI store
type Saver func(amount float64) error

// Observer receives transitions and applied savings
type Observer interface {
	RecordTransition(from, to string)
	RecordSaving(amount float64)
}

// Journal persists cycle outcomes
type Journal interface {
	SaveIntervention(ctx context.Context, r model.InterventionRecord) error
}

// Config holds the engine delays
type Config struct {
	MinIdle time.Duration `yaml:"min_idle"`
	MaxIdle time.Duration `yaml:"max_idle"`
	Deploy  time.Duration `yaml:"deploy"`
	Secured time.Duration `yaml:"secured"`
}

// DefaultConfig mirrors the demo timings
func DefaultConfig() Config {
	return Config{
		MinIdle: 15 * time.Second,
		MaxIdle: 45 * time.Second,
		Deploy:  2 * time.Second,
		Secured: 8 * time.Second,
	}
}

// Snapshot is the engine as shown to clients
type Snapshot struct {
	State        State                    `json:"state"`
	Cycle        uint64                   `json:"cycle"`
	Trigger      model.TriggerType        `json:"trigger,omitempty"`
	Intervention *model.Intervention      `json:"intervention,omitempty"`
	Artifact     *model.NarrativeArtifact `json:"artifact,omitempty"`
	Since        time.Time                `json:"since"`
	Applied      int                      `json:"applied"`
}

// Engine is the autonomous trigger state machine. One cycle runs at a time and
// every timer callback carries the cycle it was armed for, so callbacks from a
// finished cycle are ignored.
type Engine struct {
	cfg      Config
	clock    clock.Clock
	rng      simulation.Source
	proposer Proposer
	saver    Saver
	logger   *zap.Logger
	observer Observer
	journal  Journal

	mu           sync.Mutex
	base         context.Context
	running      bool
	state        State
	cycle        uint64
	trigger      model.TriggerType
	intervention *model.Intervention
	artifact     *model.NarrativeArtifact
	since        time.Time
	applied      int
	timer        clock.Timer
	cancelDetect context.CancelFunc
	listeners    []func(Snapshot)
	pending      []Snapshot
}

// New creates an idle engine. Start arms the first detection.
func New(cfg Config, clk clock.Clock, rng simulation.Source, proposer Proposer, saver Saver, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		clock:    clk,
		rng:      rng,
		proposer: proposer,
		saver:    saver,
		logger:   logger,
		state:    Idle,
		since:    clk.Now(),
	}
}

// SetObserver attaches metrics
func (e *Engine) SetObserver(o Observer) { e.observer = o }

// SetJournal attaches a cycle journal
func (e *Engine) SetJournal(j Journal) { e.journal = j }

// OnChange registers a hook called after every transition
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Start arms the timer of the current state, so a stopped engine resumes where
// it was. Detection requests are children of ctx.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.base = ctx
	e.running = true
	e.resumeLocked()
	e.mu.Unlock()

	e.logger.Info("Autonomous engine started",
		zap.Duration("min_idle", e.cfg.MinIdle),
		zap.Duration("max_idle", e.cfg.MaxIdle),
	)
}

// Stop cancels pending timers and any in-flight detection
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.cancelDetect != nil {
		e.cancelDetect()
		e.cancelDetect = nil
	}
}

// Snapshot returns the current engine view
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Activate deploys the proposed intervention. Only valid in ALERT.
func (e *Engine) Activate() (Snapshot, error) {
	e.mu.Lock()
	if e.state != Alert {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidTransition
	}
	cycle := e.cycle
	e.transitionLocked(Deploying)
	e.timer = e.clock.AfterFunc(e.cfg.Deploy, func() { e.secure(cycle) })
	snap := e.snapshotLocked()
	e.unlockAndNotify()
	return snap, nil
}

// Ignore drops the proposed intervention. Only valid in ALERT.
func (e *Engine) Ignore() (Snapshot, error) {
	e.mu.Lock()
	if e.state != Alert {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidTransition
	}
	record := e.recordLocked(model.OutcomeIgnored)
	e.clearLocked()
	e.transitionLocked(Idle)
	e.scheduleIdleLocked()
	snap := e.snapshotLocked()
	e.unlockAndNotify()

	e.save(record)
	return snap, nil
}

// resumeLocked rearms the pending timer. DETECTING resolves through its
// proposal and ALERT waits for the operator.
func (e *Engine) resumeLocked() {
	cycle := e.cycle
	switch e.state {
	case Idle:
		e.scheduleIdleLocked()
	case Deploying:
		e.timer = e.clock.AfterFunc(e.cfg.Deploy, func() { e.secure(cycle) })
	case Secured:
		e.timer = e.clock.AfterFunc(e.cfg.Secured, func() { e.reset(cycle) })
	}
}

func (e *Engine) scheduleIdleLocked() {
	if !e.running {
		return
	}
	span := e.cfg.MaxIdle - e.cfg.MinIdle
	delay := e.cfg.MinIdle + time.Duration(e.rng.Float64()*float64(span))
	cycle := e.cycle
	e.timer = e.clock.AfterFunc(delay, func() { e.detect(cycle) })
	e.logger.Debug("Next detection armed", zap.Duration("delay", delay), zap.Uint64("cycle", cycle))
}

func (e *Engine) detect(cycle uint64) {
	e.mu.Lock()
	if !e.running || e.cycle != cycle || e.state != Idle {
		e.mu.Unlock()
		return
	}
	e.cycle++
	cycle = e.cycle
	idx := int(e.rng.Float64() * float64(len(model.TriggerTypes)))
	if idx >= len(model.TriggerTypes) {
		idx = len(model.TriggerTypes) - 1
	}
	e.trigger = model.TriggerTypes[idx]
	e.timer = nil
	e.transitionLocked(Detecting)

	ctx, cancel := context.WithCancel(e.base)
	e.cancelDetect = cancel
	trigger := e.trigger
	e.unlockAndNotify()

	go e.propose(ctx, cancel, cycle, trigger)
}

func (e *Engine) propose(ctx context.Context, cancel context.CancelFunc, cycle uint64, trigger model.TriggerType) {
	defer cancel()
	art, iv, err := e.proposer.Intervention(ctx, trigger)

	e.mu.Lock()
	if e.cycle != cycle || e.state != Detecting {
		e.mu.Unlock()
		return
	}
	e.cancelDetect = nil

	if err != nil || iv.AlertTitle == "" || iv.SavedAmount <= 0 {
		e.logger.Warn("Intervention rejected, returning to idle",
			zap.String("trigger", string(trigger)),
			zap.Float64("saved_amount", iv.SavedAmount),
			zap.Error(err),
		)
		record := e.recordLocked(model.OutcomeFailed)
		e.clearLocked()
		e.transitionLocked(Idle)
		e.scheduleIdleLocked()
		e.unlockAndNotify()
		e.save(record)
		return
	}

	e.intervention = &iv
	e.artifact = &art
	record := e.recordLocked(model.OutcomeProposed)
	e.transitionLocked(Alert)
	e.unlockAndNotify()
	e.save(record)
}

func (e *Engine) secure(cycle uint64) {
	e.mu.Lock()
	if e.cycle != cycle || e.state != Deploying {
		e.mu.Unlock()
		return
	}
	amount := e.intervention.SavedAmount
	e.applied++
	record := e.recordLocked(model.OutcomeApplied)
	e.transitionLocked(Secured)
	e.timer = e.clock.AfterFunc(e.cfg.Secured, func() { e.reset(cycle) })
	e.unlockAndNotify()

	if e.saver != nil {
		if err := e.saver(amount); err != nil {
			e.logger.Error("Failed to apply autonomous saving", zap.Float64("amount", amount), zap.Error(err))
		}
	}
	if e.observer != nil {
		e.observer.RecordSaving(amount)
	}
	e.save(record)
}

func (e *Engine) reset(cycle uint64) {
	e.mu.Lock()
	if e.cycle != cycle || e.state != Secured {
		e.mu.Unlock()
		return
	}
	e.clearLocked()
	e.transitionLocked(Idle)
	e.scheduleIdleLocked()
	e.unlockAndNotify()
}

func (e *Engine) clearLocked() {
	e.intervention = nil
	e.artifact = nil
}

func (e *Engine) transitionLocked(to State) {
	from := e.state
	e.state = to
	e.since = e.clock.Now()

	e.logger.Info("Engine transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Uint64("cycle", e.cycle),
		zap.String("trigger", string(e.trigger)),
	)
	if e.observer != nil {
		e.observer.RecordTransition(string(from), string(to))
	}
	e.pending = append(e.pending, e.snapshotLocked())
}

func (e *Engine) unlockAndNotify() {
	pending := e.pending
	e.pending = nil
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, snap := range pending {
		for _, fn := range listeners {
			fn(snap)
		}
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   e.state,
		Cycle:   e.cycle,
		Trigger: e.trigger,
		Since:   e.since,
		Applied: e.applied,
	}
	if e.intervention != nil {
		iv := *e.intervention
		snap.Intervention = &iv
	}
	if e.artifact != nil {
		art := *e.artifact
		snap.Artifact = &art
	}
	return snap
}

func (e *Engine) recordLocked(outcome model.InterventionOutcome) model.InterventionRecord {
	r := model.InterventionRecord{
		ID:      uuid.NewString(),
		Cycle:   e.cycle,
		Trigger: e.trigger,
		Outcome: outcome,
		At:      e.clock.Now().UTC(),
	}
	if e.intervention != nil {
		iv := *e.intervention
		r.Intervention = &iv
	}
	if e.artifact != nil {
		r.ArtifactID = e.artifact.ID
	}
	return r
}

func (e *Engine) save(r model.InterventionRecord) {
	if e.journal == nil {
		return
	}
	e.mu.Lock()
	base := e.base
	e.mu.Unlock()

	ctx := context.Background()
	if base != nil {
		ctx = context.WithoutCancel(base)
	}
	if err := e.journal.SaveIntervention(ctx, r); err != nil {
		e.logger.Warn("Failed to journal intervention", zap.String("outcome", string(r.Outcome)), zap.Error(err))
	}
}
