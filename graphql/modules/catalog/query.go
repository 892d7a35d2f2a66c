package catalog

import (
	"github.com/aishield/shield-backend/internal/services"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the catalog queries to be mounted in the root schema
func GetQueryFields(d *services.Dashboard) graphql.Fields {
	return graphql.Fields{
		// Current window of the rotating incident feed
		"incidentFeed": &graphql.Field{
			Type: graphql.NewList(IncidentType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return d.Feed().Snapshot(), nil
			},
		},
		"defenseLog": &graphql.Field{
			Type: graphql.NewList(DefenseIncidentType),
			Args: graphql.FieldConfigArgument{
				"status": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				status := p.Args["status"].(string)
				if status == "" {
					return d.Catalog().DefenseLog, nil
				}
				var out []interface{}
				for _, inc := range d.Catalog().DefenseLog {
					if inc.Status == status {
						out = append(out, inc)
					}
				}
				return out, nil
			},
		},
		"trafficActors": &graphql.Field{
			Type: graphql.NewList(TrafficActorType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return d.Catalog().TrafficActors, nil
			},
		},
		"sentimentFeed": &graphql.Field{
			Type: graphql.NewList(SentimentItemType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return d.Catalog().SentimentFeed, nil
			},
		},
		"successStories": &graphql.Field{
			Type: graphql.NewList(SuccessStoryType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return d.Catalog().SuccessStories, nil
			},
		},
		// Platform spend scaled to the selected range
		"platformSpend": &graphql.Field{
			Type: graphql.NewList(PlatformSpendType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return d.Budget().Platforms, nil
			},
		},
	}
}
