package auth

import (
	"errors"
	"time"

	"github.com/aishield/shield-backend/model"
	"github.com/gofiber/fiber/v2"
)

// Login exchanges operator credentials for a token, also set as a cookie
func Login(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
		}

		if !a.Enabled() {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Authentication is disabled"})
		}

		resp, err := a.Login(req.Username, req.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    resp.Token,
			Expires:  resp.Operator.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})

		return c.JSON(resp)
	}
}

// Logout clears the auth cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			Path:     "/",
		})
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// Me returns the authenticated operator
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := c.Locals("username").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		role, _ := c.Locals("role").(string)
		return c.JSON(model.Operator{Username: username, Role: role})
	}
}
