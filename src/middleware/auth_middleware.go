package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/apperror"
	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/models"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ProtectRoute checks the bearer token, loads the user and attaches it to the request as Locals("user")
func ProtectRoute(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthenticated("Unauthorized - No token provided")
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return apperror.Unauthenticated("Unauthorized - Invalid token format")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals("user", user)
		c.SetUserContext(context.WithValue(c.UserContext(), lib.UserIDKey, user.Id.Hex()))

		return c.Next()
	}
}
