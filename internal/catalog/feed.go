package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/model"
	"go.uber.org/zap"
)

// FeedTimeLayout is the wall clock format of rotated incidents
const FeedTimeLayout = "15:04:05"

// Feed simulates a live incident stream by recycling the oldest row to the tail
// with a fresh timestamp. Length and membership never change.
type Feed struct {
	mu        sync.RWMutex
	incidents []model.Incident
	rotations uint64
	onRotate  func()
}

// NewFeed copies the seed rows so the catalog itself stays read-only
func NewFeed(seed []model.Incident) *Feed {
	rows := make([]model.Incident, len(seed))
	copy(rows, seed)
	return &Feed{incidents: rows}
}

// OnRotate registers a hook invoked after every rotation
func (f *Feed) OnRotate(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onRotate = fn
}

// Rotate moves the head row to the tail stamped with now
func (f *Feed) Rotate(now time.Time) {
	f.mu.Lock()
	if len(f.incidents) == 0 {
		f.mu.Unlock()
		return
	}
	head := f.incidents[0]
	copy(f.incidents, f.incidents[1:])
	head.Timestamp = now.Format(FeedTimeLayout)
	f.incidents[len(f.incidents)-1] = head
	f.rotations++
	hook := f.onRotate
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Snapshot returns a copy of the current rows, oldest first
func (f *Feed) Snapshot() []model.Incident {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.Incident, len(f.incidents))
	copy(out, f.incidents)
	return out
}

// Rotations returns how many ticks have been applied
func (f *Feed) Rotations() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rotations
}

// Run rotates the feed every interval of clk until ctx is cancelled
func (f *Feed) Run(ctx context.Context, clk clock.Clock, interval time.Duration, logger *zap.Logger) {
	var (
		mu    sync.Mutex
		timer clock.Timer
		tick  func()
	)
	tick = func() {
		if ctx.Err() != nil {
			return
		}
		f.Rotate(clk.Now())
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() == nil {
			timer = clk.AfterFunc(interval, tick)
		}
	}

	logger.Info("Incident feed started", zap.Duration("interval", interval))
	mu.Lock()
	timer = clk.AfterFunc(interval, tick)
	mu.Unlock()

	<-ctx.Done()
	mu.Lock()
	timer.Stop()
	mu.Unlock()
	logger.Info("Incident feed stopped", zap.Uint64("rotations", f.Rotations()))
}
