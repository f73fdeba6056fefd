package middleware

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	// Global limits (per IP)
	GlobalAPIMax        int // Max requests per minute for all API endpoints
	GlobalAPIExpiration time.Duration

	// Authenticated endpoint limits (per user ID)
	AuthenticatedMax        int
	AuthenticatedExpiration time.Duration

	// Content generation limits (expensive LLM calls)
	GenerationMax        int
	GenerationExpiration time.Duration
}

// DefaultRateLimitConfig returns production-safe defaults
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		// Global: 200/min = ~3.3 req/sec - very generous for normal use
		GlobalAPIMax:        200,
		GlobalAPIExpiration: 1 * time.Minute,

		// Authenticated operations: 60/min = 1 req/sec average
		AuthenticatedMax:        60,
		AuthenticatedExpiration: 1 * time.Minute,

		// Generation: a message that triggers generation costs real tokens
		GenerationMax:        10,
		GenerationExpiration: 1 * time.Minute,
	}
}

// LoadRateLimitConfig loads config from environment variables with defaults
func LoadRateLimitConfig() *RateLimitConfig {
	config := DefaultRateLimitConfig()

	if v := os.Getenv("RATE_LIMIT_GLOBAL_API"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.GlobalAPIMax = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_AUTHENTICATED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.AuthenticatedMax = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_GENERATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.GenerationMax = n
		}
	}

	// Development mode: more lenient limits
	if os.Getenv("ENVIRONMENT") == "development" {
		config.GlobalAPIMax = 1000
		config.GenerationMax = 100
		log.Println("⚠️  [RATE-LIMIT] Development mode: using relaxed rate limits")
	}

	return config
}

// GlobalAPIRateLimiter creates a rate limiter for all API requests
func GlobalAPIRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GlobalAPIMax,
		Expiration: config.GlobalAPIExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "global:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("🚫 [RATE-LIMIT] Global limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests. Please slow down.",
				"retry_after": int(config.GlobalAPIExpiration.Seconds()),
			})
		},
	})
}

// AuthenticatedRateLimiter for authenticated endpoints (uses user ID)
func AuthenticatedRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.AuthenticatedMax,
		Expiration: config.AuthenticatedExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use user ID if available, fall back to IP
			if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
				return "auth:" + userID
			}
			return "auth-ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			userID, _ := c.Locals("user_id").(string)
			log.Printf("⚠️  [RATE-LIMIT] Auth endpoint limit reached for user: %s on %s", userID, c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests. Please wait before trying again.",
				"retry_after": int(config.AuthenticatedExpiration.Seconds()),
			})
		},
	})
}

// GenerationRateLimiter for session-message endpoints that can trigger
// LLM generation
func GenerationRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GenerationMax,
		Expiration: config.GenerationExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
				return "generate:" + userID
			}
			return "generate-ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Generation limit reached for: %v", c.Locals("user_id"))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Generation rate limit reached. Please wait before sending more messages.",
				"retry_after": int(config.GenerationExpiration.Seconds()),
			})
		},
	})
}
