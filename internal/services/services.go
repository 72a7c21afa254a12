// Package services wires the repositories and domain services on top of a
// database connection.
package services

import (
	"context"

	"github.com/appbridge/migration-backend/autoupdate"
	"github.com/appbridge/migration-backend/database"
	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"go.uber.org/zap"
)

// PolicyReader is the read side of the policy store exposed over the API
type PolicyReader interface {
	GetPolicy(ctx context.Context, policyID string) (*model.UpdatePolicy, error)
}

// Services holds everything the REST, GraphQL and Kafka layers call into
type Services struct {
	Catalog   matching.CatalogSource
	Policies  PolicyReader
	Matcher   *matching.Matcher
	Lifecycle *autoupdate.Controller
	Logger    *zap.Logger
}

// New builds the services on an initialized connection
func New(conn database.DBConnection, logger *zap.Logger, maxConsecutiveFailures int) *Services {
	return Assemble(
		database.NewCatalogRepo(conn),
		database.NewMappingRepo(conn),
		database.NewAutoUpdateRepo(conn),
		logger,
		maxConsecutiveFailures,
	)
}

// Assemble builds the services on arbitrary sources. mappings may be nil.
func Assemble(catalog matching.CatalogSource, mappings matching.MappingSource, store autoupdate.Store, logger *zap.Logger, maxConsecutiveFailures int) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Services{
		Catalog:   catalog,
		Policies:  store,
		Matcher:   matching.NewMatcher(catalog, mappings, logger),
		Lifecycle: autoupdate.NewController(store, logger, maxConsecutiveFailures),
		Logger:    logger,
	}
}
