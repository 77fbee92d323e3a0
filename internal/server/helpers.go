package server

import (
	"strconv"
	"time"

	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// parseID parses a numeric route parameter.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}

// parseDate parses an ISO date (YYYY-MM-DD) from a request body field.
// Empty input yields a nil time, not an error.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Accept full timestamps too, clients send both shapes.
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, models.NewValidationError("Invalid date: " + value)
		}
	}
	return &t, nil
}

// respondServiceError maps a service error onto the endpoint's contractual
// status. notFoundStatus varies per endpoint: missing profiles answer 400,
// missing posts answer 404.
func respondServiceError(c *fiber.Ctx, err error, notFoundStatus int) error {
	switch {
	case models.IsCode(err, models.CodeValidation):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.IsCode(err, models.CodeConflict):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.IsCode(err, models.CodeUnauthorized):
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	case models.IsCode(err, models.CodeNotFound):
		return models.RespondWithError(c, notFoundStatus, err)
	case models.IsCode(err, models.CodeExternalLookup):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	default:
		middleware.Logger.ErrorContext(c.Context(), "request failed",
			"path", c.Path(), "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
}
