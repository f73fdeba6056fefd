package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pressmind/internal/seo"
)

// SEOHandler exposes the content scoring engine over HTTP
type SEOHandler struct{}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler() *SEOHandler {
	return &SEOHandler{}
}

// Analyze scores a piece of content across all dimensions
// POST /api/seo/analyze
func (h *SEOHandler) Analyze(c *fiber.Ctx) error {
	var content seo.Content
	if err := c.BodyParser(&content); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if content.Title == "" && content.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Either title or content is required",
		})
	}

	return c.JSON(seo.Analyze(content))
}

// SuggestTags proposes tags for a piece of content, excluding any it
// already carries
// POST /api/seo/suggest-tags
func (h *SEOHandler) SuggestTags(c *fiber.Ctx) error {
	var content seo.Content
	if err := c.BodyParser(&content); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if content.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}

	return c.JSON(fiber.Map{"suggestions": seo.SuggestTags(content)})
}

// Readability returns the readability breakdown for a text
// POST /api/seo/readability
func (h *SEOHandler) Readability(c *fiber.Ctx) error {
	var content seo.Content
	if err := c.BodyParser(&content); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	text := seo.StripMarkup(content.Content)
	return c.JSON(seo.AnalyzeReadability(text))
}
