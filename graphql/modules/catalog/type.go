// Package catalog exposes the reference tables and the live incident feed over GraphQL.
package catalog

import "github.com/graphql-go/graphql"

// IncidentType represents a row of the live incident feed
var IncidentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Incident",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.String},
		"timestamp": &graphql.Field{Type: graphql.String},
		"message":   &graphql.Field{Type: graphql.String},
		"severity":  &graphql.Field{Type: graphql.String},
		"type":      &graphql.Field{Type: graphql.String},
	},
})

// DefenseIncidentType represents a blocked incident of the incident universe
var DefenseIncidentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DefenseIncident",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.String},
		"title":        &graphql.Field{Type: graphql.String},
		"type":         &graphql.Field{Type: graphql.String},
		"channel":      &graphql.Field{Type: graphql.String},
		"status":       &graphql.Field{Type: graphql.String},
		"threat_score": &graphql.Field{Type: graphql.Int},
		"start_time":   &graphql.Field{Type: graphql.String},
		"duration":     &graphql.Field{Type: graphql.Int},
		"description":  &graphql.Field{Type: graphql.String},
		"ai_action":    &graphql.Field{Type: graphql.String},
	},
})

// TrafficActorType represents a traffic identity persona
var TrafficActorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TrafficActor",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.String},
		"name":             &graphql.Field{Type: graphql.String},
		"type":             &graphql.Field{Type: graphql.String},
		"damage_potential": &graphql.Field{Type: graphql.Int},
		"method":           &graphql.Field{Type: graphql.String},
		"volume":           &graphql.Field{Type: graphql.String},
		"description":      &graphql.Field{Type: graphql.String},
	},
})

// SentimentItemType represents a social post on the reputation radar
var SentimentItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SentimentItem",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.String},
		"platform":   &graphql.Field{Type: graphql.String},
		"user":       &graphql.Field{Type: graphql.String},
		"text":       &graphql.Field{Type: graphql.String},
		"sentiment":  &graphql.Field{Type: graphql.String},
		"risk_score": &graphql.Field{Type: graphql.Int},
		"timestamp":  &graphql.Field{Type: graphql.String},
		"ai_flag":    &graphql.Field{Type: graphql.String},
	},
})

// SuccessStoryType represents a customer reference
var SuccessStoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SuccessStory",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.String},
		"brand_name":      &graphql.Field{Type: graphql.String},
		"representative":  &graphql.Field{Type: graphql.String},
		"title":           &graphql.Field{Type: graphql.String},
		"comment":         &graphql.Field{Type: graphql.String},
		"critical_metric": &graphql.Field{Type: graphql.String},
		"threat_type":     &graphql.Field{Type: graphql.String},
	},
})

// PlatformSpendType represents range scaled platform spend
var PlatformSpendType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PlatformSpend",
	Fields: graphql.Fields{
		"name":          &graphql.Field{Type: graphql.String},
		"spend":         &graphql.Field{Type: graphql.Float},
		"saved":         &graphql.Field{Type: graphql.Float},
		"risk":          &graphql.Field{Type: graphql.Int},
		"clean_traffic": &graphql.Field{Type: graphql.Int},
		"insight":       &graphql.Field{Type: graphql.String},
	},
})
