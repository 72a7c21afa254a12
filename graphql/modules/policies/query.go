package policies

import (
	"context"
	"errors"

	"github.com/appbridge/migration-backend/model"
	"github.com/graphql-go/graphql"
)

// PolicyReader reads update policies by key
type PolicyReader interface {
	GetPolicy(ctx context.Context, policyID string) (*model.UpdatePolicy, error)
}

// GetQueryFields returns the policy queries to be mounted in the root schema.
// A missing policy resolves to null.
func GetQueryFields(policies PolicyReader) graphql.Fields {
	return graphql.Fields{
		"updatePolicy": &graphql.Field{
			Type: UpdatePolicyType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				policy, err := policies.GetPolicy(p.Context, p.Args["id"].(string))
				if errors.Is(err, model.ErrNotFound) {
					return nil, nil
				}
				if err != nil {
					return nil, err
				}
				return policy, nil
			},
		},
	}
}
