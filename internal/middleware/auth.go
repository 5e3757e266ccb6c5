package middleware

import (
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/gofiber/fiber/v2"
)

// LocalsUsername and LocalsToken are the fiber.Ctx locals RequireAuth sets.
const (
	LocalsUsername = "username"
	LocalsToken    = "authToken"
)

// RequireAuth resolves the Authorization header to a username and rejects
// the request with 401 when it does not name a live session.
func RequireAuth(users *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		username, err := users.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Error: unauthorized",
			})
		}

		c.Locals(LocalsToken, token)
		c.Locals(LocalsUsername, username)
		return c.Next()
	}
}
