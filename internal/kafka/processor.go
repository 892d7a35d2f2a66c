// Package kafka shares applied KPI store events between dashboard instances.
package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/aishield/shield-backend/events/modules/kpi"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/store"
	"github.com/cenkalti/backoff"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

// Observer counts produced and consumed messages
type Observer interface {
	RecordKafka(direction, status string)
}

type nopObserver struct{}

func (nopObserver) RecordKafka(string, string) {}

func orNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}

func saslMechanism(cfg config.Kafka) (plain.Mechanism, bool) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return plain.Mechanism{}, false
	}
	return plain.Mechanism{Username: cfg.APIKey, Password: cfg.APISecret}, true
}

// NewDialer configures SASL/PLAIN over TLS when credentials are provided
func NewDialer(cfg config.Kafka) *kafka.Dialer {
	if mechanism, ok := saslMechanism(cfg); ok {
		return &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	// local development, no SASL/TLS
	return &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
}

// NewTransport is the writer side equivalent of NewDialer
func NewTransport(cfg config.Kafka) *kafka.Transport {
	mechanism, ok := saslMechanism(cfg)
	if !ok {
		return nil
	}
	return &kafka.Transport{
		SASL: mechanism,
		TLS:  &tls.Config{MinVersion: tls.VersionTLS12},
	}
}

// brokerBackOff bounds the startup wait for the first broker
func brokerBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	return backoff.WithMaxRetries(bo, 4)
}

func dialBroker(dialer *kafka.Dialer, broker string) func(context.Context) error {
	return func(ctx context.Context) error {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

func waitForBroker(ctx context.Context, dial func(context.Context) error, bo backoff.BackOff, broker string, logger *zap.Logger) error {
	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		logger.Info("Kafka connection attempt", zap.Int("attempt", attempt), zap.String("broker", broker))
		return dial(ctx)
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		logger.Warn("Retrying Kafka connection", zap.String("broker", broker), zap.Error(err), zap.Duration("next", next))
	})
}

// RunEventProcessor consumes KPI events from other instances and dispatches
// them into the local store. Each instance reads with its own consumer group
// so every instance sees every event.
func RunEventProcessor(ctx context.Context, cfg config.Kafka, applier kpi.Applier, obs Observer, logger *zap.Logger) error {
	if !cfg.Enabled() {
		return errors.New("kafka brokers are not configured")
	}
	obs = orNop(obs)
	dialer := NewDialer(cfg)

	broker := cfg.Brokers[0]
	if err := waitForBroker(ctx, dialBroker(dialer, broker), brokerBackOff(), broker, logger); err != nil {
		return fmt.Errorf("kafka broker %s unreachable: %w", broker, err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID + "-" + applier.Origin(),
		Topic:       cfg.Topic,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
		Dialer:      dialer,
	})

	go func() {
		defer reader.Close()

		logger.Info("Kafka event processor started", zap.String("topic", cfg.Topic))

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Info("Kafka event processor stopped")
					return
				}
				logger.Warn("Kafka read failed", zap.Error(err))
				obs.RecordKafka("consume", "error")
				continue
			}

			err = kpi.HandleApplied(ctx, msg.Value, applier, logger)
			switch {
			case err == nil:
				obs.RecordKafka("consume", "applied")
			case errors.Is(err, kpi.ErrOwnEvent):
				obs.RecordKafka("consume", "own")
			default:
				logger.Warn("Dropped KPI event", zap.Int64("offset", msg.Offset), zap.Error(err))
				obs.RecordKafka("consume", "rejected")
			}
		}
	}()

	return nil
}

// EventPublisher is the producer surface used by Publisher
type EventPublisher interface {
	PublishApplied(ctx context.Context, e store.Event, version uint64) error
}

type applied struct {
	event   store.Event
	version uint64
}

// Publisher forwards locally applied store events to Kafka in apply order.
// Remote events are never re-published.
type Publisher struct {
	producer EventPublisher
	origin   string
	obs      Observer
	logger   *zap.Logger
	queue    chan applied
}

// NewPublisher buffers up to size pending events
func NewPublisher(producer EventPublisher, origin string, size int, obs Observer, logger *zap.Logger) *Publisher {
	if size <= 0 {
		size = 256
	}
	return &Publisher{
		producer: producer,
		origin:   origin,
		obs:      orNop(obs),
		logger:   logger,
		queue:    make(chan applied, size),
	}
}

// Listener is registered with store.OnApplied
func (p *Publisher) Listener(e store.Event, s store.State) {
	if e.Origin != p.origin {
		return
	}
	select {
	case p.queue <- applied{event: e, version: s.Version}:
	default:
		p.logger.Warn("KPI event queue full, dropping", zap.String("type", string(e.Type)))
		p.obs.RecordKafka("produce", "dropped")
	}
}

// Run publishes queued events until ctx is cancelled
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-p.queue:
			if err := p.producer.PublishApplied(ctx, a.event, a.version); err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Warn("Failed to publish KPI event", zap.String("type", string(a.event.Type)), zap.Error(err))
				p.obs.RecordKafka("produce", "error")
				continue
			}
			p.obs.RecordKafka("produce", "ok")
		}
	}
}
