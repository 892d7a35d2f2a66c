// Package graphql assembles the dashboard GraphQL schema from its modules.
package graphql

import (
	"github.com/aishield/shield-backend/graphql/modules/catalog"
	"github.com/aishield/shield-backend/graphql/modules/dashboard"
	"github.com/aishield/shield-backend/graphql/modules/history"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/graphql-go/graphql"
)

func merge(sets ...graphql.Fields) graphql.Fields {
	out := graphql.Fields{}
	for _, fields := range sets {
		for name, f := range fields {
			out[name] = f
		}
	}
	return out
}

// CreateSchema builds the root query and mutation types over a running dashboard
func CreateSchema(d *services.Dashboard) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: merge(
			dashboard.GetQueryFields(d),
			catalog.GetQueryFields(d),
			history.GetQueryFields(d),
		),
	})

	rootMutation := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: dashboard.GetMutationFields(d),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMutation,
	})
}
