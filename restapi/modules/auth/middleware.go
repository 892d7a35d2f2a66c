package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func tokenFrom(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies(cookieName)
}

// RequireOperator blocks engine actions without a valid operator token.
// When auth is disabled every request passes.
func RequireOperator(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.Enabled() {
			return c.Next()
		}

		token := tokenFrom(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := a.ValidateJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		// Store user info in context
		c.Locals("is_authenticated", true)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// OptionalAuth identifies the operator if a token is present but does not block guests.
func OptionalAuth(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("is_authenticated", false)
		if !a.Enabled() {
			return c.Next()
		}
		token := tokenFrom(c)
		if token == "" {
			return c.Next()
		}

		claims, err := a.ValidateJWT(token)
		if err != nil {
			// Treat invalid/expired tokens as guest access
			return c.Next()
		}

		c.Locals("is_authenticated", true)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}
