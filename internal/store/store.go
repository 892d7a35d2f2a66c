package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listener is told about every applied event
type Listener func(e Event, s State)

// Store serializes events through Reduce
type Store struct {
	origin string
	logger *zap.Logger

	mu        sync.RWMutex
	state     State
	listeners []Listener
	subs      map[int]chan State
	nextSub   int

	// notify keeps fan-out in version order across concurrent Dispatch calls.
	// Listeners must not Dispatch.
	notify sync.Mutex
}

// New creates a store; origin identifies this instance on events it stamps
func New(initial State, origin string, logger *zap.Logger) *Store {
	return &Store{
		origin: origin,
		logger: logger,
		state:  initial,
		subs:   make(map[int]chan State),
	}
}

// Origin returns the instance id stamped on local events
func (s *Store) Origin() string { return s.origin }

// OnApplied registers a listener
func (s *Store) OnApplied(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch reduces e into the state. Local events get an id, origin and time.
func (s *Store) Dispatch(e Event) (State, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Origin == "" {
		e.Origin = s.origin
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	s.mu.Lock()
	next, err := Reduce(s.state, e)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("Rejected store event", zap.String("type", string(e.Type)), zap.Error(err))
		return s.State(), err
	}
	changed := next.Version != s.state.Version
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	subs := make([]chan State, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	if !changed {
		s.mu.Unlock()
		return next, nil
	}
	s.notify.Lock()
	s.mu.Unlock()
	defer s.notify.Unlock()

	s.logger.Debug("Applied store event",
		zap.String("type", string(e.Type)),
		zap.String("origin", e.Origin),
		zap.Uint64("version", next.Version),
	)
	for _, ch := range subs {
		select {
		case ch <- next:
		default:
			// slow subscriber: drop the stale value and keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
	for _, l := range listeners {
		l(e, next)
	}
	return next, nil
}

// State returns the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel receiving the newest state after each change
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
