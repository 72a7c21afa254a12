// Package matching implements the REST API handlers for catalog matching.
package matching

import (
	"strings"

	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"github.com/gofiber/fiber/v2"
)

// PostMatch matches one observed application name against the catalog.
func PostMatch(matcher *matching.Matcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.MatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}
		if strings.TrimSpace(req.Name) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}

		result, err := matcher.Match(c.UserContext(), req.Name, req.Publisher)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(result)
	}
}

// PostBatchMatch matches discovered applications and returns them in claim
// priority order.
func PostBatchMatch(matcher *matching.Matcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.BatchMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}

		apps := req.Apps
		if req.ExcludeSystemApps {
			apps = matching.FilterUserApps(apps)
		}

		items, err := matcher.MatchDiscoveredApps(c.UserContext(), apps)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		statuses := make([]model.MatchStatus, len(items))
		for i, item := range items {
			statuses[i] = item.MatchResult.Status
		}

		return c.JSON(model.BatchMatchResponse{
			Items: matching.SortByClaimPriority(items),
			Stats: matching.CalculateMatchStats(statuses),
		})
	}
}

// PostSccmMatch runs the legacy strategy chain for a tenant's applications and
// returns them in migration priority order.
func PostSccmMatch(matcher *matching.Matcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.SccmMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}

		apps := req.Applications
		if req.ExcludeSystemApps {
			apps = matching.FilterUserSccmApps(apps)
		}

		results, err := matcher.MatchSccmApps(c.UserContext(), apps, req.TenantID, nil)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		items := make([]model.SccmMatchItem, 0, len(apps))
		statuses := make([]model.MatchStatus, 0, len(apps))
		for _, app := range apps {
			result := results[app.CiID]
			items = append(items, model.SccmMatchItem{
				CiID:            app.CiID,
				DisplayName:     app.LocalizedDisplayName,
				IsDeployed:      app.IsDeployed,
				DeploymentCount: app.DeploymentCount,
				MatchResult:     result,
			})
			statuses = append(statuses, result.Status)
		}

		return c.JSON(model.SccmMatchResponse{
			Items: matching.SortByMigrationPriority(items),
			Stats: matching.CalculateMatchStats(statuses),
		})
	}
}
