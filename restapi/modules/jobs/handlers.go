// Package jobs implements the REST API handler reporting packaging job outcomes.
package jobs

import (
	"errors"

	jobevents "github.com/appbridge/migration-backend/events/modules/jobs"
	"github.com/appbridge/migration-backend/model"
	"github.com/gofiber/fiber/v2"
)

// PostJobTerminal applies a terminal job outcome to the auto-update policy
// tracking the job. Repeated deliveries for the same job are acknowledged
// without a mutation.
func PostJobTerminal(service jobevents.LifecycleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobID := c.Params("id")

		var req model.JobTerminalRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}
		if !req.Outcome.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown outcome: " + string(req.Outcome),
			})
		}

		mutation, err := service.OnJobTerminal(c.UserContext(), jobID, req.Outcome, req.ErrorMessage)
		if errors.Is(err, model.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		message := "No auto-update state changed"
		if mutation != nil {
			message = "Auto-update policy updated"
		}
		return c.JSON(model.JobTerminalResponse{
			Success:  true,
			Message:  message,
			Mutation: mutation,
		})
	}
}
