// Package catalog defines the GraphQL types and queries for the package catalog
// and name matching.
package catalog

import (
	"github.com/appbridge/migration-backend/model"
	"github.com/graphql-go/graphql"
)

// MatchStatusEnum is the classification of a match.
var MatchStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MatchStatus",
	Values: graphql.EnumValueConfigMap{
		"MATCHED":   &graphql.EnumValueConfig{Value: model.MatchStatusMatched},
		"PARTIAL":   &graphql.EnumValueConfig{Value: model.MatchStatusPartial},
		"UNMATCHED": &graphql.EnumValueConfig{Value: model.MatchStatusUnmatched},
		"PENDING":   &graphql.EnumValueConfig{Value: model.MatchStatusPending},
	},
})

// CatalogEntryType represents one canonical package.
var CatalogEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CatalogEntry",
	Fields: graphql.Fields{
		"winget_id": &graphql.Field{Type: graphql.String},
		"publisher": &graphql.Field{Type: graphql.String},
		"aliases":   &graphql.Field{Type: graphql.NewList(graphql.String)},
		"display_name": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if entry, ok := p.Source.(model.CandidateMapping); ok {
					return entry.DisplayName(), nil
				}
				return nil, nil
			},
		},
	},
})

// PartialMatchType represents a runner-up candidate.
var PartialMatchType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PartialMatch",
	Fields: graphql.Fields{
		"winget_id":  &graphql.Field{Type: graphql.String},
		"name":       &graphql.Field{Type: graphql.String},
		"publisher":  &graphql.Field{Type: graphql.String},
		"version":    &graphql.Field{Type: graphql.String},
		"confidence": &graphql.Field{Type: graphql.Float},
		"purl":       &graphql.Field{Type: graphql.String},
	},
})

// MatchResultType represents the classification of one observed name.
var MatchResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MatchResult",
	Fields: graphql.Fields{
		"status":       &graphql.Field{Type: MatchStatusEnum},
		"winget_id":    &graphql.Field{Type: graphql.String},
		"winget_name":  &graphql.Field{Type: graphql.String},
		"confidence":   &graphql.Field{Type: graphql.Float},
		"alternatives": &graphql.Field{Type: graphql.NewList(PartialMatchType)},
	},
})
