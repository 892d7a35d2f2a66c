// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/restapi/modules/auth"
	"github.com/aishield/shield-backend/restapi/modules/dashboard"
	"github.com/aishield/shield-backend/restapi/modules/tools"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
// Engine actions require an operator token when authentication is enabled.
func SetupRoutes(app *fiber.App, d *services.Dashboard, authn *auth.Authenticator, schema graphql.Schema, registry *metrics.Registry, logger *zap.Logger) {
	if registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(registry.Handler()))
	}

	// API Group /api/v1
	api := app.Group("/api/v1")

	api.Post("/graphql", auth.OptionalAuth(authn), GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", auth.Login(authn))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.OptionalAuth(authn), auth.Me())

	// Dashboard panels
	api.Get("/dashboard", dashboard.GetDashboard(d))
	api.Post("/dashboard/range", dashboard.PostTimeRange(d))
	api.Get("/pulse", dashboard.GetPulse(d))
	api.Post("/pulse/action", dashboard.PostPulseAction(d))
	api.Get("/feed", dashboard.GetFeed(d))
	api.Get("/catalog/:name", dashboard.GetCatalogTable(d))
	api.Get("/scenario", dashboard.GetScenario(d))
	api.Post("/scenario", dashboard.PostScenario(d))
	api.Get("/compare", dashboard.GetComparison(d))
	api.Get("/budget", dashboard.GetBudget(d))
	api.Get("/reputation", dashboard.GetReputation(d))
	api.Post("/narratives/:kind", dashboard.PostNarrative(d))
	api.Get("/history", dashboard.GetHistory(d))

	// Autonomous engine
	api.Get("/engine", dashboard.GetEngine(d))
	api.Post("/engine/activate", auth.RequireOperator(authn), dashboard.PostActivate(d))
	api.Post("/engine/ignore", auth.RequireOperator(authn), dashboard.PostIgnore(d))

	// Guardian tools
	toolGroup := api.Group("/tools")
	toolGroup.Post("/chat", tools.PostChat(d))
	toolGroup.Post("/analyze", tools.PostAnalyzeImage(d))
	toolGroup.Post("/image", tools.PostGenerateImage(d))

	logger.Info("API routes initialized",
		zap.Bool("auth_enabled", authn.Enabled()),
		zap.Bool("metrics_enabled", registry != nil),
	)
}
