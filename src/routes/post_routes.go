package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/controllers"
)

// PostRoutes sets up post listing, creation, deletion, likes and comments
func PostRoutes(app *fiber.App, pc *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/posts")

	post.Get("/", pc.GetPosts)
	post.Get("/:id", pc.GetPostByID)

	post.Post("/", protect, pc.CreatePost)
	post.Delete("/:id", protect, pc.DeletePost)
	post.Post("/like/:id", protect, pc.LikePost)
	post.Post("/unlike/:id", protect, pc.UnlikePost)
	post.Post("/comment/:id", protect, pc.CreateComment)
	post.Delete("/comment/:id/:commentId", protect, pc.DeleteComment)
}
