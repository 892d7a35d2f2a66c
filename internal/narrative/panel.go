package narrative

import (
	"context"
	"sync"
	"time"

	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/model"
	"go.uber.org/zap"
)

// Request produces an artifact for a panel
type Request func(ctx context.Context) model.NarrativeArtifact

// PanelState is what a UI panel renders
type PanelState struct {
	Name     string                   `json:"name"`
	Artifact *model.NarrativeArtifact `json:"artifact,omitempty"`
	Loading  bool                     `json:"loading"`
	Sequence uint64                   `json:"sequence"`
}

// Panel debounces refresh requests for one narrative panel and keeps only the
// newest answer: each issued request takes a token, and a result whose token is
// no longer the latest is dropped.
type Panel struct {
	name     string
	clock    clock.Clock
	debounce time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	base     context.Context

	mu       sync.Mutex
	timer    clock.Timer
	armed    uint64
	issued   uint64
	applied  uint64
	loading  bool
	latest   *model.NarrativeArtifact
	onUpdate func(model.NarrativeArtifact)

	inflight sync.WaitGroup
}

// NewPanel creates a panel whose requests are children of base
func NewPanel(base context.Context, name string, clk clock.Clock, debounce, timeout time.Duration, logger *zap.Logger) *Panel {
	return &Panel{
		name:     name,
		clock:    clk,
		debounce: debounce,
		timeout:  timeout,
		logger:   logger.With(zap.String("panel", name)),
		base:     base,
	}
}

// OnUpdate registers a hook called with every applied artifact
func (p *Panel) OnUpdate(fn func(model.NarrativeArtifact)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = fn
}

// Trigger (re)arms the debounce timer; only the last request in a burst runs
func (p *Panel) Trigger(req Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.loading = true
	p.armed++
	gen := p.armed
	p.timer = p.clock.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		// a callback that fired while a newer Trigger held the lock is superseded
		if gen != p.armed {
			p.mu.Unlock()
			return
		}
		p.issued++
		token := p.issued
		p.timer = nil
		p.inflight.Add(1)
		p.mu.Unlock()

		go p.run(token, req)
	})
}

// Refresh runs req immediately under the same sequence guard and returns the
// panel state once it completes
func (p *Panel) Refresh(ctx context.Context, req Request) PanelState {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.armed++
	p.issued++
	token := p.issued
	p.loading = true
	p.inflight.Add(1)
	p.mu.Unlock()

	p.exec(ctx, token, req)
	return p.Snapshot()
}

// Snapshot returns the latest applied artifact
func (p *Panel) Snapshot() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	state := PanelState{Name: p.name, Loading: p.loading, Sequence: p.applied}
	if p.latest != nil {
		art := *p.latest
		state.Artifact = &art
	}
	return state
}

// Wait blocks until every issued request has finished
func (p *Panel) Wait() {
	p.inflight.Wait()
}

func (p *Panel) run(token uint64, req Request) {
	p.exec(p.base, token, req)
}

func (p *Panel) exec(ctx context.Context, token uint64, req Request) {
	defer p.inflight.Done()

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	art := req(cctx)
	cancel()

	p.mu.Lock()
	if token != p.issued {
		p.mu.Unlock()
		p.logger.Debug("Discarding stale narrative", zap.Uint64("token", token), zap.Uint64("latest", p.issued))
		return
	}
	p.latest = &art
	p.applied = token
	p.loading = p.timer != nil
	hook := p.onUpdate
	p.mu.Unlock()

	if hook != nil {
		hook(art)
	}
}
