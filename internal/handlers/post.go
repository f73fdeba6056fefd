package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"pressmind/internal/services"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Get returns a single post owned by the caller
// GET /api/posts/:id
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID := c.Params("id")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post ID is required",
		})
	}

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	post, err := h.postService.GetByID(c.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		log.Printf("❌ Failed to get post %s: %v", postID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get post",
		})
	}

	return c.JSON(post)
}

// List returns the caller's posts, newest first
// GET /api/posts
func (h *PostHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	limit := int64(c.QueryInt("limit", 50))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	posts, err := h.postService.ListByUser(c.Context(), userID, limit)
	if err != nil {
		log.Printf("❌ Failed to list posts for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list posts",
		})
	}

	return c.JSON(fiber.Map{"posts": posts})
}
