// Package history exposes the narrative, intervention and KPI event journal over GraphQL.
package history

import (
	"github.com/aishield/shield-backend/graphql/modules/dashboard"
	"github.com/graphql-go/graphql"
)

// InterventionRecordType represents one journaled autonomous cycle step
var InterventionRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InterventionRecord",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.String},
		"cycle":        &graphql.Field{Type: graphql.Int},
		"trigger":      &graphql.Field{Type: graphql.String},
		"outcome":      &graphql.Field{Type: graphql.String},
		"intervention": &graphql.Field{Type: dashboard.InterventionType},
		"artifact_id":  &graphql.Field{Type: graphql.String},
		"at":           &graphql.Field{Type: graphql.DateTime},
	},
})

// KPIEventType represents one applied store event
var KPIEventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KPIEvent",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.String},
		"type":       &graphql.Field{Type: graphql.String},
		"origin":     &graphql.Field{Type: graphql.String},
		"at":         &graphql.Field{Type: graphql.DateTime},
		"time_range": &graphql.Field{Type: graphql.String},
		"amount":     &graphql.Field{Type: graphql.Float},
		"kpis":       &graphql.Field{Type: graphql.NewList(dashboard.KPIType)},
		"scenario":   &graphql.Field{Type: dashboard.ScenarioInputType},
	},
})

// HistoryType represents the journal view
var HistoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "History",
	Fields: graphql.Fields{
		"narratives":    &graphql.Field{Type: graphql.NewList(dashboard.NarrativeArtifactType)},
		"interventions": &graphql.Field{Type: graphql.NewList(InterventionRecordType)},
		"events":        &graphql.Field{Type: graphql.NewList(KPIEventType)},
	},
})
