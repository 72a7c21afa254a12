// Package policies defines the GraphQL types and queries for auto-update policies.
package policies

import (
	"github.com/appbridge/migration-backend/model"
	"github.com/graphql-go/graphql"
)

// UpdatePolicyType represents an auto-update policy and its circuit breaker state.
var UpdatePolicyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdatePolicy",
	Fields: graphql.Fields{
		"key":                      &graphql.Field{Type: graphql.String},
		"tenant_id":                &graphql.Field{Type: graphql.String},
		"winget_id":                &graphql.Field{Type: graphql.String},
		"mode":                     &graphql.Field{Type: graphql.String},
		"pinned_version":           &graphql.Field{Type: graphql.String},
		"consecutive_failures":     &graphql.Field{Type: graphql.Int},
		"is_enabled":               &graphql.Field{Type: graphql.Boolean},
		"last_auto_update_version": &graphql.Field{Type: graphql.String},
		"created_at":               &graphql.Field{Type: graphql.DateTime},
		"updated_at":               &graphql.Field{Type: graphql.DateTime},
		"allows_version": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"version": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if policy, ok := p.Source.(*model.UpdatePolicy); ok {
					return policy.AllowsVersion(p.Args["version"].(string)), nil
				}
				return nil, nil
			},
		},
	},
})
