package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"cramazon/internal/models"
	"cramazon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP statuses and a
// stable machine-readable kind. Unrecognized errors get a generic body;
// the underlying text is logged, never forwarded to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTokenMissing),
		errors.Is(err, services.ErrTokenInvalid),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"kind":    "auth_failure",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"kind":    "forbidden",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"kind":    "not_found",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"kind":    "conflict",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"kind":    "unavailable",
			"message": "Storage temporarily unavailable, retry later",
		})
	default:
		log.Printf("Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"kind":    "storage_error",
			"message": "Internal storage failure",
		})
	}
}

// respondValidationError renders validator failures as a 422 with one
// message per offending field.
func respondValidationError(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"kind":    "validation_error",
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondBadBody renders a body-parse failure.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"kind":    "validation_error",
		"message": "Invalid request body",
	})
}

// parseIDParam parses the numeric :id route parameter.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondBadID renders a non-numeric :id parameter.
func respondBadID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"kind":    "validation_error",
		"message": "Invalid id parameter",
	})
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
