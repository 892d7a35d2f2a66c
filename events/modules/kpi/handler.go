package kpi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/aishield/shield-backend/util"
	"go.uber.org/zap"
)

// ErrOwnEvent marks an event this instance produced itself
var ErrOwnEvent = errors.New("event originated locally")

// Applier is the store surface the handler dispatches into
type Applier interface {
	Origin() string
	Dispatch(e store.Event) (store.State, error)
}

// HandleApplied decodes an AppliedEvent and dispatches it into the local store.
// Events from this instance return ErrOwnEvent and are not applied twice.
func HandleApplied(_ context.Context, msg []byte, applier Applier, logger *zap.Logger) error {
	var event AppliedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal AppliedEvent: %w", err)
	}

	if event.EventType != EventTypeApplied {
		return fmt.Errorf("unexpected event type %q", event.EventType)
	}
	if err := util.CheckSchemaVersion(event.SchemaVersion, SchemaConstraint); err != nil {
		return err
	}
	if event.Origin == "" || event.Event.ID == "" || event.Event.Type == "" {
		return fmt.Errorf("invalid event: missing required fields")
	}
	if event.Origin == applier.Origin() {
		return ErrOwnEvent
	}

	// keep the remote identity so the event is never re-published
	event.Event.Origin = event.Origin

	state, err := applier.Dispatch(event.Event)
	if err != nil {
		return fmt.Errorf("failed to apply %s from %s: %w", event.Event.Type, event.Origin, err)
	}

	logger.Debug("Applied remote KPI event",
		zap.String("type", string(event.Event.Type)),
		zap.String("origin", event.Origin),
		zap.Uint64("version", state.Version),
	)
	return nil
}
