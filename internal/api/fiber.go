// Package api assembles the Fiber application serving the dashboard REST and GraphQL surface.
package api

import (
	"fmt"
	"time"

	gqlschema "github.com/aishield/shield-backend/graphql"
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/restapi"
	"github.com/aishield/shield-backend/restapi/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(d *services.Dashboard, authn *auth.Authenticator, registry *metrics.Registry, log *zap.Logger) (*fiber.App, error) {
	schema, err := gqlschema.CreateSchema(d)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL schema: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "AI SHIELD API v1.0",
		BodyLimit:   20 * 1024 * 1024, // screenshots for image analysis
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency} op=${locals:graphql_op}\n",
	}))

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"instance": d.Store().Origin(),
			"version":  d.Store().State().Version,
		})
	})

	restapi.SetupRoutes(app, d, authn, schema, registry, log)

	return app, nil
}
