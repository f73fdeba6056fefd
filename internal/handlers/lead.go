package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pressmind/internal/models"
	"pressmind/internal/services"
)

// LeadHandler handles CRM lead HTTP requests
type LeadHandler struct {
	leadService *services.LeadService
	metrics     *services.Metrics
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService, metrics *services.Metrics) *LeadHandler {
	return &LeadHandler{leadService: leadService, metrics: metrics}
}

// Create registers a new lead
// POST /api/leads
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var req models.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	lead, err := h.leadService.Create(c.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if h.metrics != nil {
		h.metrics.LeadsCreated.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// List returns leads, optionally filtered by status
// GET /api/leads?status=new
func (h *LeadHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := int64(c.QueryInt("limit", 100))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	leads, err := h.leadService.List(c.Context(), status, limit)
	if err != nil {
		log.Printf("❌ Failed to list leads: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list leads",
		})
	}
	return c.JSON(fiber.Map{"leads": leads})
}

// UpdateStatus moves a lead through the pipeline
// PATCH /api/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	leadID := c.Params("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status is required",
		})
	}

	if err := h.leadService.UpdateStatus(c.Context(), leadID, req.Status); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddMessage appends a message to a lead's history
// POST /api/leads/:id/messages
func (h *LeadHandler) AddMessage(c *fiber.Ctx) error {
	leadID := c.Params("id")
	userID, _ := c.Locals("user_id").(string)

	var req models.LeadMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message body is required",
		})
	}

	msg, err := h.leadService.AddMessage(c.Context(), leadID, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ListMessages returns a lead's message history
// GET /api/leads/:id/messages
func (h *LeadHandler) ListMessages(c *fiber.Ctx) error {
	leadID := c.Params("id")
	limit := int64(c.QueryInt("limit", 100))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	messages, err := h.leadService.ListMessages(c.Context(), leadID, limit)
	if err != nil {
		log.Printf("❌ Failed to list messages for lead %s: %v", leadID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}
	return c.JSON(fiber.Map{"messages": messages})
}
