package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/services"
	"github.com/theleywin/devconnect-backend/src/validation"
)

type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// GetPosts returns every post, newest first
func (pc *PostController) GetPosts(c *fiber.Ctx) error {
	posts, err := pc.posts.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPostByID returns a single post
func (pc *PostController) GetPostByID(c *fiber.Ctx) error {
	post, err := pc.posts.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost creates a post owned by the authenticated user
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	var in validation.PostInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	post, err := pc.posts.CreatePost(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost deletes a post; only its owner may do so
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	if err := pc.posts.DeletePost(c.UserContext(), currentUser(c).Id, c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// LikePost adds the authenticated user's like to the post
func (pc *PostController) LikePost(c *fiber.Ctx) error {
	post, err := pc.posts.LikePost(c.UserContext(), currentUser(c).Id, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// UnlikePost removes the authenticated user's like from the post
func (pc *PostController) UnlikePost(c *fiber.Ctx) error {
	post, err := pc.posts.UnlikePost(c.UserContext(), currentUser(c).Id, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreateComment adds a comment to the top of the post's comment list
func (pc *PostController) CreateComment(c *fiber.Ctx) error {
	var in validation.PostInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	post, err := pc.posts.AddComment(c.UserContext(), currentUser(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeleteComment removes a comment; allowed for its author and the post owner
func (pc *PostController) DeleteComment(c *fiber.Ctx) error {
	post, err := pc.posts.RemoveComment(c.UserContext(), currentUser(c).Id, c.Params("id"), c.Params("commentId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
