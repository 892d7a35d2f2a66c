package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/catalog"
	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newSchema(t *testing.T) (graphql.Schema, *services.Dashboard) {
	t.Helper()
	cfg := config.Default()
	cfg.InstanceID = "gql"
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

	schema, err := CreateSchema(d)
	require.NoError(t, err)
	return schema, d
}

func run(t *testing.T, schema graphql.Schema, query string) map[string]interface{} {
	t.Helper()
	res := graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: context.Background()})
	require.Empty(t, res.Errors)
	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestSchema_OverviewSwitchesRange(t *testing.T) {
	schema, d := newSchema(t)

	data := run(t, schema, `{ dashboardOverview(range: "LAST_24H") { time_range kpis { id title } } }`)
	overview := data["dashboardOverview"].(map[string]interface{})
	assert.Equal(t, "LAST_24H", overview["time_range"])
	assert.Len(t, overview["kpis"], 6)
	assert.Equal(t, "LAST_24H", string(d.Store().State().TimeRange))
}

func TestSchema_PulseAndCatalog(t *testing.T) {
	schema, _ := newSchema(t)

	data := run(t, schema, `{
		dashboardPulse(range: "LAST_24H") { points { attack_count threat_level } story { trend } }
		incidentFeed { id severity }
		successStories { brand_name }
	}`)
	pulse := data["dashboardPulse"].(map[string]interface{})
	assert.Len(t, pulse["points"], 24)
	assert.NotEmpty(t, data["incidentFeed"])
	assert.NotEmpty(t, data["successStories"])
}

func TestSchema_SetScenario(t *testing.T) {
	schema, d := newSchema(t)

	data := run(t, schema, `mutation {
		setScenario(input: {budget_scale: 2, attack_intensity: "AGGRESSIVE", protection_level: "MAXIMUM", platform_mix: "META_ONLY"}) {
			input { budget_scale attack_intensity }
			result { points { day } }
		}
	}`)
	view := data["setScenario"].(map[string]interface{})
	assert.Equal(t, "AGGRESSIVE", view["input"].(map[string]interface{})["attack_intensity"])
	assert.Len(t, view["result"].(map[string]interface{})["points"], 31)
	assert.Equal(t, 2.0, d.Store().State().Scenario.BudgetScale)

	res := graphql.Do(graphql.Params{Schema: schema, RequestString: `mutation {
		setScenario(input: {budget_scale: 9, attack_intensity: "LOW", protection_level: "STANDARD", platform_mix: "META_ONLY"}) { input { budget_scale } }
	}`})
	assert.NotEmpty(t, res.Errors)
}

func TestSchema_HistoryAndEngine(t *testing.T) {
	schema, _ := newSchema(t)

	run(t, schema, `mutation { refreshSummary { name } }`)
	data := run(t, schema, `{
		history(kind: "summary") { narratives { kind source } }
		dashboardEngine { state cycle }
	}`)
	hist := data["history"].(map[string]interface{})
	narratives := hist["narratives"].([]interface{})
	require.NotEmpty(t, narratives)
	assert.Equal(t, "summary", narratives[0].(map[string]interface{})["kind"])
	assert.Equal(t, "IDLE", data["dashboardEngine"].(map[string]interface{})["state"])
}
