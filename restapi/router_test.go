package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	gqlschema "github.com/aishield/shield-backend/graphql"
	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/metrics"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	"github.com/aishield/shield-backend/restapi/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, authCfg config.Auth) *fiber.App {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	registry := metrics.NewRegistry()
	d := services.New(context.Background(), services.Deps{
		Config:  config.Default(),
		Catalog: cat,
		Clock:   clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		Metrics: registry,
		Logger:  zap.NewNop(),
	})
	t.Cleanup(d.Stop)

	schema, err := gqlschema.CreateSchema(d)
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, d, auth.NewAuthenticator(authCfg), schema, registry, zap.NewNop())
	return app
}

func send(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestRoutes_EngineOpenWithoutAuth(t *testing.T) {
	app := newRouter(t, config.Auth{})

	status, _ := send(t, app, fiber.MethodGet, "/api/v1/engine", nil, "")
	assert.Equal(t, fiber.StatusOK, status)

	// no alert pending, but the request reaches the engine
	status, _ = send(t, app, fiber.MethodPost, "/api/v1/engine/ignore", nil, "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = send(t, app, fiber.MethodPost, "/api/v1/auth/login", model.LoginRequest{Username: "operator", Password: "x"}, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRoutes_EngineRequiresOperator(t *testing.T) {
	hash, err := auth.HashPassword("kalkan")
	require.NoError(t, err)
	app := newRouter(t, config.Auth{
		JWTSecret:            "router-secret",
		OperatorUser:         "operator",
		OperatorPasswordHash: hash,
		TokenTTL:             time.Hour,
	})

	status, _ := send(t, app, fiber.MethodPost, "/api/v1/engine/activate", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, raw := send(t, app, fiber.MethodPost, "/api/v1/auth/login", model.LoginRequest{Username: "operator", Password: "kalkan"}, "")
	require.Equal(t, fiber.StatusOK, status)
	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))

	status, _ = send(t, app, fiber.MethodPost, "/api/v1/engine/activate", nil, login.Token)
	assert.Equal(t, fiber.StatusConflict, status)

	// reads stay public
	status, _ = send(t, app, fiber.MethodGet, "/api/v1/feed", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRoutes_GraphQLAndMetrics(t *testing.T) {
	app := newRouter(t, config.Auth{})

	status, raw := send(t, app, fiber.MethodPost, "/api/v1/graphql", map[string]any{
		"query": `{ dashboardOverview { time_range } }`,
	}, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":{"dashboardOverview":{"time_range":"LIVE"}}}`, string(raw))

	status, _ = send(t, app, fiber.MethodPost, "/api/v1/narratives/budget_strategy", nil, "")
	require.Equal(t, fiber.StatusOK, status)

	status, raw = send(t, app, fiber.MethodGet, "/metrics", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), "budget_strategy")
}
