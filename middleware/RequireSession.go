package middleware

import (
	"farm-market-session/service"

	"github.com/gofiber/fiber/v2"
)

// LocalsSession is the fiber.Ctx key the active *model.SessionState is stored under
const LocalsSession = "session"

// RequireSession rejects the request with 401 unless a session is active.
// Expiry is detected here, on read.
func RequireSession(svc *service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, ok := svc.Current()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active session"})
		}
		c.Locals(LocalsSession, state)
		return c.Next()
	}
}
