// Package graphql assembles the root GraphQL schema from the query modules.
package graphql

import (
	"github.com/appbridge/migration-backend/graphql/modules/catalog"
	"github.com/appbridge/migration-backend/graphql/modules/policies"
	"github.com/appbridge/migration-backend/internal/services"
	"github.com/graphql-go/graphql"
)

// CreateSchema builds the schema on top of the wired services
func CreateSchema(svc *services.Services) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range catalog.GetQueryFields(svc.Catalog, svc.Matcher) {
		fields[name] = field
	}
	for name, field := range policies.GetQueryFields(svc.Policies) {
		fields[name] = field
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
}
