package main

import (
	"context"
	"fmt"

	"github.com/aishield/shield-backend/database"
	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/internal/services"
	"go.uber.org/zap"
)

// narrativeService picks the Gemini client when an API key is configured
func narrativeService(ctx context.Context, cfg config.Config, logger *zap.Logger) (narrative.Service, error) {
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, serving fallback narratives")
		return narrative.Offline{}, nil
	}
	svc, err := narrative.NewGemini(ctx, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}
	return svc, nil
}

// buildDashboard wires a dashboard from configuration. A nil journal selects the in-memory one.
func buildDashboard(ctx context.Context, cfg config.Config, journal database.Journal, registry *metrics.Registry, logger *zap.Logger) (*services.Dashboard, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	svc, err := narrativeService(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return services.New(ctx, services.Deps{
		Config:  cfg,
		Catalog: cat,
		Service: svc,
		Journal: journal,
		Metrics: registry,
		Logger:  logger,
	}), nil
}
