package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pressmind/internal/database"
	"pressmind/internal/services"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *database.MongoDB
	redis *services.RedisService
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(db *database.MongoDB, redis *services.RedisService) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"

	mongoStatus := "ok"
	if err := h.db.Ping(c.Context()); err != nil {
		mongoStatus = "unreachable"
		status = "degraded"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(c.Context()); err != nil {
			redisStatus = "unreachable"
			status = "degraded"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"mongodb":   mongoStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
