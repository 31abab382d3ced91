package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/models"
)

// currentUser returns the user ProtectRoute attached to the request
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
