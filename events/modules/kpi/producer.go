package kpi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aishield/shield-backend/internal/store"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Producer sends applied store events to Kafka
type Producer struct {
	Writer *kafka.Writer
}

// NewProducer initializes a new Kafka writer for KPI events
func NewProducer(brokers []string, topic string, transport *kafka.Transport) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	if transport != nil {
		w.Transport = transport
	}
	return &Producer{Writer: w}
}

// NewAppliedEvent builds the contract for a locally applied event
func NewAppliedEvent(e store.Event, version uint64) AppliedEvent {
	return AppliedEvent{
		EventType:     EventTypeApplied,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Origin:        e.Origin,
		StoreVersion:  version,
		Event:         e,
	}
}

// PublishApplied sends the event to the Kafka topic keyed by origin so one
// instance's events stay ordered within a partition
func (p *Producer) PublishApplied(ctx context.Context, e store.Event, version uint64) error {
	payload, err := json.Marshal(NewAppliedEvent(e, version))
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Origin),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *Producer) Close() error {
	return p.Writer.Close()
}
