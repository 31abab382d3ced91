package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/controllers"
)

// ProfileRoutes sets up profile reads, upsert, experience and education entries, and account deletion
func ProfileRoutes(app *fiber.App, pc *controllers.ProfileController, protect fiber.Handler) {
	profile := app.Group("/api/profile")

	profile.Get("/all", pc.GetProfiles)
	profile.Get("/handle/:handle", pc.GetProfileByHandle)
	profile.Get("/user/:userId", pc.GetProfileByUserID)

	profile.Get("/", protect, pc.GetOwnProfile)
	profile.Post("/", protect, pc.UpsertProfile)
	profile.Delete("/", protect, pc.DeleteAccount)
	profile.Post("/experience", protect, pc.AddExperience)
	profile.Delete("/experience/:id", protect, pc.RemoveExperience)
	profile.Post("/education", protect, pc.AddEducation)
	profile.Delete("/education/:id", protect, pc.RemoveEducation)
}
