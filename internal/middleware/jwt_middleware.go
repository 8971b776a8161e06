package middleware

import (
	"errors"
	"log"
	"strings"

	"cramazon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the bearer token in the Authorization header into
// a loaded user record and stores it in the request locals under "user".
// The header carries the raw token; a conventional "Bearer " prefix is
// tolerated and stripped.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")

		user, err := authService.ResolveUser(c.UserContext(), rawToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenMissing):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"kind":    "auth_failure",
					"message": "Authorization header is required",
				})
			case errors.Is(err, services.ErrTokenInvalid), errors.Is(err, services.ErrAccountNotFound):
				log.Printf("Token resolution failed: %v", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"kind":    "auth_failure",
					"message": "Invalid or expired token",
				})
			case errors.Is(err, services.ErrUnavailable):
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"kind":    "unavailable",
					"message": "Storage temporarily unavailable, retry later",
				})
			default:
				log.Printf("Unexpected error resolving token: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"kind":    "storage_error",
					"message": "Could not resolve identity",
				})
			}
		}

		c.Locals("user", user)
		return c.Next()
	}
}
