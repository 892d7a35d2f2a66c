// Package dashboard defines the GraphQL types for the dashboard panels.
package dashboard

import (
	"encoding/json"

	"github.com/aishield/shield-backend/model"
	"github.com/graphql-go/graphql"
)

// KPIType represents one headline card
var KPIType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KPI",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"value":       &graphql.Field{Type: graphql.Float},
		"prefix":      &graphql.Field{Type: graphql.String},
		"suffix":      &graphql.Field{Type: graphql.String},
		"trend":       &graphql.Field{Type: graphql.String},
		"trend_value": &graphql.Field{Type: graphql.String},
		"status":      &graphql.Field{Type: graphql.String},
		"insight":     &graphql.Field{Type: graphql.String},
	},
})

// NarrativeArtifactType represents a model or fallback narrative
var NarrativeArtifactType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NarrativeArtifact",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.String},
		"kind":            &graphql.Field{Type: graphql.String},
		"raw_text":        &graphql.Field{Type: graphql.String},
		"source":          &graphql.Field{Type: graphql.String},
		"degraded_reason": &graphql.Field{Type: graphql.String},
		"created_at":      &graphql.Field{Type: graphql.DateTime},
		// structured call sites expose their decoded payload as a JSON string
		"parsed_json": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				art, ok := p.Source.(model.NarrativeArtifact)
				if !ok {
					if ptr, isPtr := p.Source.(*model.NarrativeArtifact); isPtr && ptr != nil {
						art, ok = *ptr, true
					}
				}
				if !ok || art.Parsed == nil {
					return nil, nil
				}
				b, err := json.Marshal(art.Parsed)
				if err != nil {
					return nil, err
				}
				return string(b), nil
			},
		},
	},
})

// PanelStateType represents a debounced narrative panel
var PanelStateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PanelState",
	Fields: graphql.Fields{
		"name":     &graphql.Field{Type: graphql.String},
		"artifact": &graphql.Field{Type: NarrativeArtifactType},
		"loading":  &graphql.Field{Type: graphql.Boolean},
		"sequence": &graphql.Field{Type: graphql.Int},
	},
})

// OverviewType represents the KPI cards and the executive summary
var OverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardOverview",
	Fields: graphql.Fields{
		"version":          &graphql.Field{Type: graphql.Int},
		"time_range":       &graphql.Field{Type: graphql.String},
		"kpis":             &graphql.Field{Type: graphql.NewList(KPIType)},
		"summary":          &graphql.Field{Type: PanelStateType},
		"autonomous_saved": &graphql.Field{Type: graphql.Float},
	},
})

// MetricPointType represents one pulse sample
var MetricPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MetricPoint",
	Fields: graphql.Fields{
		"timestamp":    &graphql.Field{Type: graphql.String},
		"attack_count": &graphql.Field{Type: graphql.Int},
		"budget_saved": &graphql.Field{Type: graphql.Int},
		"threat_level": &graphql.Field{Type: graphql.String},
		"note":         &graphql.Field{Type: graphql.String},
	},
})

// PulseStoryType represents the digest of a pulse series
var PulseStoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PulseStory",
	Fields: graphql.Fields{
		"trend":          &graphql.Field{Type: graphql.String},
		"peak_label":     &graphql.Field{Type: graphql.String},
		"peak_attacks":   &graphql.Field{Type: graphql.Int},
		"total_saved":    &graphql.Field{Type: graphql.Int},
		"current_threat": &graphql.Field{Type: graphql.String},
	},
})

// PulseType represents the defense pulse chart
var PulseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Pulse",
	Fields: graphql.Fields{
		"time_range": &graphql.Field{Type: graphql.String},
		"points":     &graphql.Field{Type: graphql.NewList(MetricPointType)},
		"story":      &graphql.Field{Type: PulseStoryType},
	},
})

// ScenarioInputType represents the simulator controls
var ScenarioInputType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ScenarioInput",
	Fields: graphql.Fields{
		"budget_scale":     &graphql.Field{Type: graphql.Float},
		"attack_intensity": &graphql.Field{Type: graphql.String},
		"protection_level": &graphql.Field{Type: graphql.String},
		"platform_mix":     &graphql.Field{Type: graphql.String},
	},
})

// ScenarioArgumentType is the mutation input of the simulator controls
var ScenarioArgumentType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ScenarioArgument",
	Fields: graphql.InputObjectConfigFieldMap{
		"budget_scale":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"attack_intensity": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"protection_level": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"platform_mix":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

// SimulationPointType represents one simulated day
var SimulationPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SimulationPoint",
	Fields: graphql.Fields{
		"day":         &graphql.Field{Type: graphql.Int},
		"unprotected": &graphql.Field{Type: graphql.Float},
		"optimized":   &graphql.Field{Type: graphql.Float},
		"saved":       &graphql.Field{Type: graphql.Float},
	},
})

// SimulationResultType represents the 30 day projection
var SimulationResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SimulationResult",
	Fields: graphql.Fields{
		"points":                 &graphql.Field{Type: graphql.NewList(SimulationPointType)},
		"total_saved":            &graphql.Field{Type: graphql.Float},
		"roi_boost_percent":      &graphql.Field{Type: graphql.Float},
		"projected_attack_count": &graphql.Field{Type: graphql.Int},
		"attack_rate":            &graphql.Field{Type: graphql.Float},
		"block_rate":             &graphql.Field{Type: graphql.Float},
	},
})

// ScenarioType represents the simulator panel
var ScenarioType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Scenario",
	Fields: graphql.Fields{
		"input":  &graphql.Field{Type: ScenarioInputType},
		"result": &graphql.Field{Type: SimulationResultType},
		"brief":  &graphql.Field{Type: PanelStateType},
	},
})

// ComparisonType represents a period over period delta
var ComparisonType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Comparison",
	Fields: graphql.Fields{
		"period":        &graphql.Field{Type: graphql.String},
		"metric":        &graphql.Field{Type: graphql.String},
		"metric_label":  &graphql.Field{Type: graphql.String},
		"previous":      &graphql.Field{Type: graphql.Int},
		"current":       &graphql.Field{Type: graphql.Int},
		"delta_percent": &graphql.Field{Type: graphql.Float},
		"improved":      &graphql.Field{Type: graphql.Boolean},
	},
})

// ComparisonViewType represents the comparative panel
var ComparisonViewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ComparisonView",
	Fields: graphql.Fields{
		"comparison": &graphql.Field{Type: ComparisonType},
		"insight":    &graphql.Field{Type: PanelStateType},
	},
})

// InterventionType represents an autonomous engine proposal
var InterventionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Intervention",
	Fields: graphql.Fields{
		"alertTitle":   &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"actionLabel":  &graphql.Field{Type: graphql.String},
		"savedAmount":  &graphql.Field{Type: graphql.Float},
		"successStory": &graphql.Field{Type: graphql.String},
	},
})

// EngineType represents the autonomous trigger state
var EngineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Engine",
	Fields: graphql.Fields{
		"state":        &graphql.Field{Type: graphql.String},
		"cycle":        &graphql.Field{Type: graphql.Int},
		"trigger":      &graphql.Field{Type: graphql.String},
		"intervention": &graphql.Field{Type: InterventionType},
		"artifact":     &graphql.Field{Type: NarrativeArtifactType},
		"since":        &graphql.Field{Type: graphql.DateTime},
		"applied":      &graphql.Field{Type: graphql.Int},
	},
})

// RadarAxisType represents one reputation radar axis
var RadarAxisType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RadarAxis",
	Fields: graphql.Fields{
		"axis":  &graphql.Field{Type: graphql.String},
		"value": &graphql.Field{Type: graphql.Int},
	},
})
