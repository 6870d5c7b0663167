package middleware

import (
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserRequired is a Fiber middleware gating routes on the persisted user
// session. The session has no token and no expiry: it is the loggedInUser
// record, checked against the user list on every request so a deleted
// account loses access immediately.
func UserRequired(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := accounts.CurrentUser()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Login required",
			})
		}

		// Store the username for subsequent handlers
		c.Locals("username", user.Username)
		return c.Next()
	}
}

// AdminRequired gates back-office routes on the persisted admin session
// flag. Reaching it also auto-provisions the admin account on first use.
func AdminRequired(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !accounts.AdminLoggedIn() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin login required",
			})
		}
		return c.Next()
	}
}
