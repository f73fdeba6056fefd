package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"pressmind/internal/models"
	"pressmind/internal/services"
)

// AssistantHandler handles the guided blog-creation session endpoints
type AssistantHandler struct {
	orchestrator *services.CreationOrchestrator
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(orchestrator *services.CreationOrchestrator) *AssistantHandler {
	return &AssistantHandler{orchestrator: orchestrator}
}

// StartSession begins a new creation session, optionally seeded with a topic
// POST /api/assistant/sessions
func (h *AssistantHandler) StartSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	resp, err := h.orchestrator.StartSession(c.Context(), userID, req.Topic)
	if err != nil {
		log.Printf("❌ Failed to start creation session for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SendMessage posts a user message to a session
// POST /api/assistant/sessions/:id/messages
func (h *AssistantHandler) SendMessage(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.UserMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	resp, err := h.orchestrator.HandleMessage(c.Context(), sessionID, userID, req.Message)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.JSON(resp)
}

// GetSession returns a session in any lifecycle state
// GET /api/assistant/sessions/:id
func (h *AssistantHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	resp, err := h.orchestrator.GetSession(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.JSON(resp)
}

// Cancel terminates a session
// POST /api/assistant/sessions/:id/cancel
func (h *AssistantHandler) Cancel(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	resp, err := h.orchestrator.Cancel(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.JSON(resp)
}

// SaveDraft persists the generated draft as a new post
// POST /api/assistant/sessions/:id/save-draft
func (h *AssistantHandler) SaveDraft(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	post, err := h.orchestrator.SaveDraft(c.Context(), sessionID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionExpired) {
			return h.sessionError(c, sessionID, err)
		}
		log.Printf("❌ Failed to save draft for session %s: %v", sessionID, err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"postId": post.ID.Hex(),
		"title":  post.Title,
		"status": post.Status,
	})
}

// ListSessions returns the caller's recent sessions
// GET /api/assistant/sessions
func (h *AssistantHandler) ListSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessions, err := h.orchestrator.ListSessions(c.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list sessions for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list sessions",
		})
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// sessionError maps session lookup failures to distinct HTTP codes.
func (h *AssistantHandler) sessionError(c *fiber.Ctx, sessionID string, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, services.ErrSessionExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Session has expired or is no longer active",
		})
	case errors.Is(err, services.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Another message for this session is being processed",
		})
	default:
		log.Printf("❌ Session %s request failed: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal error",
		})
	}
}
