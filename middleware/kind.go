package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireKind checks the principal kind set by Protected
func RequireKind(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, ok := c.Locals("kind").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Principal kind not found in context",
			})
		}
		if got != kind {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to perform this action",
			})
		}
		return c.Next()
	}
}

// RequireClient restricts a route to client tokens
func RequireClient() fiber.Handler {
	return RequireKind("client")
}

// RequireExpert restricts a route to expert tokens
func RequireExpert() fiber.Handler {
	return RequireKind("expert")
}
