package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StorageTimeout bounds every storage call made while handling the
// request by attaching a deadline to the request context. Repositories
// run under this context; a deadline hit surfaces as a retryable
// 503-mapped outcome rather than a hung request.
func StorageTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
