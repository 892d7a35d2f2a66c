package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aishield/shield-backend/database"
	"github.com/aishield/shield-backend/events/modules/kpi"
	"github.com/aishield/shield-backend/internal/api"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/kafka"
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/restapi/modules/auth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST and GraphQL API with the autonomous engine running",
	Long: `Starts the dashboard backend on MS_PORT. The journal goes to ArangoDB when
ARANGO_URL is set and stays in memory otherwise. When KAFKA_BROKERS is set every
applied KPI event is published and events from other instances are replayed.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := database.InitLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()

	var journal database.Journal
	if cfg.Arango.Enabled() {
		conn, err := database.Connect(ctx, cfg.Arango, logger)
		if err != nil {
			return err
		}
		journal = database.NewArangoJournal(conn, registry)
	} else {
		logger.Info("ARANGO_URL not set, journaling in memory")
	}

	d, err := buildDashboard(ctx, cfg, journal, registry, logger)
	if err != nil {
		return err
	}

	if cfg.Kafka.Enabled() {
		producer := kpi.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, kafka.NewTransport(cfg.Kafka))
		defer func() { _ = producer.Close() }()

		publisher := kafka.NewPublisher(producer, cfg.InstanceID, 0, registry, logger)
		d.Store().OnApplied(publisher.Listener)
		go publisher.Run(ctx)

		go func() {
			if err := kafka.RunEventProcessor(ctx, cfg.Kafka, d.Store(), registry, logger); err != nil {
				logger.Error("Kafka event processor disabled", zap.Error(err))
			}
		}()
	}

	d.Start(ctx)
	defer d.Stop()

	app, err := api.NewFiberApp(d, auth.NewAuthenticator(cfg.Auth), registry, logger)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("Server shutdown incomplete", zap.Error(err))
		}
	}()

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("instance", cfg.InstanceID),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
		zap.Bool("arango", cfg.Arango.Enabled()),
	)
	return app.Listen(":" + cfg.Port)
}
