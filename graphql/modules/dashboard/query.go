package dashboard

import (
	"context"

	"github.com/aishield/shield-backend/internal/services"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(d *services.Dashboard) graphql.Fields {
	return graphql.Fields{
		// KPI cards and executive summary
		"dashboardOverview": &graphql.Field{
			Type: OverviewType,
			Args: graphql.FieldConfigArgument{
				"range": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(d, p.Args["range"].(string))
			},
		},
		// Defense pulse chart
		"dashboardPulse": &graphql.Field{
			Type: PulseType,
			Args: graphql.FieldConfigArgument{
				"range": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolvePulse(d, p.Args["range"].(string))
			},
		},
		// What-if simulator
		"dashboardScenario": &graphql.Field{
			Type: ScenarioType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveScenario(d)
			},
		},
		// Comparative universe
		"dashboardComparison": &graphql.Field{
			Type: ComparisonViewType,
			Args: graphql.FieldConfigArgument{
				"period": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "MONTH"},
				"metric": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "BUDGET"},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveComparison(d, p.Args["period"].(string), p.Args["metric"].(string))
			},
		},
		// Autonomous engine
		"dashboardEngine": &graphql.Field{
			Type: EngineType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveEngine(d)
			},
		},
		"dashboardReputationRadar": &graphql.Field{
			Type: graphql.NewList(RadarAxisType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveReputationRadar(d)
			},
		},
	}
}

// GetMutationFields returns the dashboard mutations
func GetMutationFields(d *services.Dashboard) graphql.Fields {
	return graphql.Fields{
		"setTimeRange": &graphql.Field{
			Type: OverviewType,
			Args: graphql.FieldConfigArgument{
				"range": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSetTimeRange(d, p.Args["range"].(string))
			},
		},
		"setScenario": &graphql.Field{
			Type: ScenarioType,
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(ScenarioArgumentType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args, _ := p.Args["input"].(map[string]interface{})
				return ResolveSetScenario(d, args)
			},
		},
		"refreshSummary": &graphql.Field{
			Type: PanelStateType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				ctx := p.Context
				if ctx == nil {
					ctx = context.Background()
				}
				return ResolveRefreshSummary(ctx, d)
			},
		},
	}
}
