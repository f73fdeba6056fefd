package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"pressmind/internal/services"
)

// TaxonomyHandler handles category and tag HTTP requests
type TaxonomyHandler struct {
	categoryService *services.CategoryService
	tagService      *services.TagService
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(categoryService *services.CategoryService, tagService *services.TagService) *TaxonomyHandler {
	return &TaxonomyHandler{
		categoryService: categoryService,
		tagService:      tagService,
	}
}

// ListCategories returns all categories
// GET /api/categories
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		log.Printf("❌ Failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategory returns a single category
// GET /api/categories/:id
func (h *TaxonomyHandler) GetCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if categoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category ID is required",
		})
	}

	category, err := h.categoryService.GetByID(c.Context(), categoryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		log.Printf("❌ Failed to get category %s: %v", categoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get category",
		})
	}
	return c.JSON(category)
}

// CreateCategory creates a new category (admin)
// POST /api/categories
func (h *TaxonomyHandler) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category name is required",
		})
	}

	category, err := h.categoryService.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		log.Printf("❌ Failed to create category %q: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// ListTags returns all tags
// GET /api/tags
func (h *TaxonomyHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tagService.List(c.Context())
	if err != nil {
		log.Printf("❌ Failed to list tags: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tags",
		})
	}
	return c.JSON(fiber.Map{"tags": tags})
}
