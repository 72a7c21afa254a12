// Package migration implements the REST API handlers for converting legacy
// deployment types into target app settings.
package migration

import (
	"strings"

	"github.com/appbridge/migration-backend/migration"
	"github.com/appbridge/migration-backend/model"
	"github.com/gofiber/fiber/v2"
)

// PostConvert converts a legacy application and validates the resulting
// detection rules.
func PostConvert() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var app model.SccmApplication
		if err := c.BodyParser(&app); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}

		result := migration.ConvertAppSettings(app)
		return c.JSON(model.ConvertResponse{
			Result:     result,
			Validation: migration.ValidateDetectionRules(result.DetectionRules),
		})
	}
}

// PostValidate checks whether a detection rule list is deployment-ready.
func PostValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ValidateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}
		return c.JSON(migration.ValidateDetectionRules(req.DetectionRules))
	}
}

// PostRequirements generates the requirement rules gating installation on
// the application already being present.
func PostRequirements() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.RequirementRulesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}
		if strings.TrimSpace(req.DisplayName) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "display_name is required",
			})
		}

		return c.JSON(model.RequirementRulesResponse{
			Rules: migration.GenerateRequirementRules(req.DisplayName, req.InstallerType, req.ProductCode),
		})
	}
}
