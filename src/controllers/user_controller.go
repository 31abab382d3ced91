package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/services"
	"github.com/theleywin/devconnect-backend/src/validation"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

// Register validates the input, creates the user and returns it
func (uc *UserController) Register(c *fiber.Ctx) error {
	var in validation.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	user, err := uc.auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login checks email and password and returns a bearer token
func (uc *UserController) Login(c *fiber.Ctx) error {
	var in validation.LoginInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	token, err := uc.auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// GetCurrentUser returns the authenticated user
func (uc *UserController) GetCurrentUser(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":     user.Id,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
	})
}
