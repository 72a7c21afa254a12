package catalog

import (
	"github.com/appbridge/migration-backend/matching"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the catalog queries to be mounted in the root schema.
func GetQueryFields(catalog matching.CatalogSource, matcher *matching.Matcher) graphql.Fields {
	return graphql.Fields{
		"catalog": &graphql.Field{
			Type: graphql.NewList(CatalogEntryType),
			Args: graphql.FieldConfigArgument{
				"search": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				search, _ := p.Args["search"].(string)
				if search == "" {
					return catalog.All(p.Context)
				}
				return catalog.Search(p.Context, search)
			},
		},
		"match": &graphql.Field{
			Type: MatchResultType,
			Args: graphql.FieldConfigArgument{
				"name":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"publisher": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				name := p.Args["name"].(string)
				publisher, _ := p.Args["publisher"].(string)
				return matcher.Match(p.Context, name, publisher)
			},
		},
	}
}
