package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newApp(t *testing.T) (*fiber.App, *services.Dashboard) {
	t.Helper()
	cfg := config.Default()
	cfg.InstanceID = "rest"
	cat, err := catalog.Default()
	require.NoError(t, err)

	d := services.New(context.Background(), services.Deps{
		Config:  cfg,
		Catalog: cat,
		Clock:   clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		Source:  fixedSource(0.5),
		Logger:  zap.NewNop(),
	})
	t.Cleanup(d.Stop)

	app := fiber.New()
	app.Get("/dashboard", GetDashboard(d))
	app.Post("/dashboard/range", PostTimeRange(d))
	app.Get("/pulse", GetPulse(d))
	app.Get("/catalog/:name", GetCatalogTable(d))
	app.Post("/scenario", PostScenario(d))
	app.Get("/compare", GetComparison(d))
	app.Post("/narratives/:kind", PostNarrative(d))
	app.Get("/history", GetHistory(d))
	app.Post("/engine/activate", PostActivate(d))
	return app, d
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestDashboard_RangeSwitch(t *testing.T) {
	app, d := newApp(t)

	status, body := do(t, app, fiber.MethodGet, "/dashboard", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "LIVE", body["time_range"])

	status, body = do(t, app, fiber.MethodPost, "/dashboard/range", model.TimeRangeRequest{Range: "last_30d"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "LAST_30D", body["time_range"])
	assert.Equal(t, model.TimeRangeLast30D, d.Store().State().TimeRange)

	status, body = do(t, app, fiber.MethodGet, "/dashboard?range=YESTERDAY", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "unknown time range")
}

func TestDashboard_PulsePointCount(t *testing.T) {
	app, _ := newApp(t)

	for r, want := range map[string]int{"LIVE": 60, "LAST_24H": 24, "LAST_30D": 30} {
		status, body := do(t, app, fiber.MethodGet, "/pulse?range="+r, nil)
		require.Equal(t, fiber.StatusOK, status, r)
		assert.Len(t, body["points"], want, r)
	}
}

func TestDashboard_CatalogTables(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/catalog/defense-log", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []model.DefenseIncident
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.NotEmpty(t, rows)

	status, _ := do(t, app, fiber.MethodGet, "/catalog/unknown", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDashboard_ScenarioValidation(t *testing.T) {
	app, _ := newApp(t)

	in := model.DefaultScenario()
	in.BudgetScale = 7
	status, _ := do(t, app, fiber.MethodPost, "/scenario", in)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body := do(t, app, fiber.MethodPost, "/scenario", model.DefaultScenario())
	assert.Equal(t, fiber.StatusOK, status)
	result := body["result"].(map[string]any)
	assert.Len(t, result["points"], 31)
}

func TestDashboard_Compare(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, fiber.MethodGet, "/compare?period=WEEK&metric=RISK", nil)
	assert.Equal(t, fiber.StatusOK, status)
	cmp := body["comparison"].(map[string]any)
	assert.Equal(t, "WEEK", cmp["period"])

	status, _ = do(t, app, fiber.MethodGet, "/compare?period=DECADE", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDashboard_NarrativeAndHistory(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, fiber.MethodPost, "/narratives/trend_action", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "trend_action", body["kind"])
	assert.Equal(t, "fallback", body["source"])

	status, _ = do(t, app, fiber.MethodPost, "/narratives/poetry", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, fiber.MethodGet, "/history?kind=trend_action&limit=5", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["narratives"], 1)

	status, _ = do(t, app, fiber.MethodGet, "/history?limit=many", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDashboard_ActivateWithoutAlert(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, fiber.MethodPost, "/engine/activate", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["error"], "invalid engine transition")
}
