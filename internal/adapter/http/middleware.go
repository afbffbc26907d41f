package http

import (
	"portfolio-site/internal/model"
	"portfolio-site/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// OptionalAuth attaches the caller to the request when a valid bearer token
// is present. It never rejects: collection access policies decide.
func OptionalAuth(jwtAuth *auth.JWTAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtAuth == nil {
			return c.Next()
		}
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		token, err := auth.ExtractToken(header)
		if err != nil {
			return c.Next()
		}
		user, err := jwtAuth.Verify(token)
		if err != nil {
			return c.Next()
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// RequireAuth rejects anonymous callers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *auth.User {
	u, _ := c.Locals(userLocal).(*auth.User)
	return u
}

func accessArgs(c *fiber.Ctx) model.AccessArgs {
	return model.AccessArgs{User: currentUser(c)}
}
