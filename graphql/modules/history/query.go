package history

import (
	"context"

	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the journal queries to be mounted in the root schema
func GetQueryFields(d *services.Dashboard) graphql.Fields {
	return graphql.Fields{
		"history": &graphql.Field{
			Type: HistoryType,
			Args: graphql.FieldConfigArgument{
				"kind":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				ctx := p.Context
				if ctx == nil {
					ctx = context.Background()
				}
				kind := model.NarrativeKind(p.Args["kind"].(string))
				return d.History(ctx, kind, p.Args["limit"].(int))
			},
		},
	}
}
