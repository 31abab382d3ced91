package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/controllers"
)

// UserRoutes sets up registration, login and current user routes
func UserRoutes(app *fiber.App, uc *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/users")

	user.Post("/register", uc.Register)
	user.Post("/login", uc.Login)
	user.Get("/current", protect, uc.GetCurrentUser)
}
