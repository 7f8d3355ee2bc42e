package server

import (
	"strconv"

	"inkpulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseUintQuery reads a required numeric query parameter. On failure it
// writes the 400 response and returns ok=false.
func parseUintQuery(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(name+" query parameter is required"))
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(name+" must be a positive integer"))
		return 0, false
	}
	return uint(v), true
}

// respondServiceError maps a service error onto the taxonomy status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
