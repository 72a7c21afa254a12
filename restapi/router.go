package restapi

import (
	"github.com/appbridge/migration-backend/internal/services"
	"github.com/appbridge/migration-backend/restapi/modules/jobs"
	"github.com/appbridge/migration-backend/restapi/modules/matching"
	"github.com/appbridge/migration-backend/restapi/modules/migration"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
// CORS and logging are handled globally in internal/api/fiber.go.
func SetupRoutes(app *fiber.App, svc *services.Services, schema graphql.Schema) {
	api := app.Group("/api/v1")

	api.Post("/graphql", GraphQLHandler(schema))

	// Catalog matching
	api.Post("/match", matching.PostMatch(svc.Matcher))
	api.Post("/match/batch", matching.PostBatchMatch(svc.Matcher))
	api.Post("/sccm/match", matching.PostSccmMatch(svc.Matcher))

	// Deployment conversion
	migrationGroup := api.Group("/migration")
	migrationGroup.Post("/convert", migration.PostConvert())
	migrationGroup.Post("/validate", migration.PostValidate())
	migrationGroup.Post("/requirements", migration.PostRequirements())

	// Packaging job lifecycle
	api.Post("/jobs/:id/terminal", jobs.PostJobTerminal(svc.Lifecycle))

	svc.Logger.Info("API routes initialized successfully")
}
