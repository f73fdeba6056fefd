package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port     string
	MongoURI string
	RedisURL string

	// JWT authentication
	JWTSecret string

	// Text-generation provider (OpenAI-compatible)
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMTemperature float64
	LLMRatePerMin  int // outbound generation calls per minute, 0 = unlimited

	// Creation session lifecycle
	SessionTTL    time.Duration // document TTL for abandoned sessions
	SessionMaxAge time.Duration // hard age ceiling for findActiveSession

	// Catalog caching
	CategoryCacheTTL time.Duration
	TagCacheTTL      time.Duration
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017/pressmind"),
		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature: getFloatEnv("LLM_TEMPERATURE", 0.7),
		LLMRatePerMin:  getIntEnv("LLM_RATE_PER_MINUTE", 20),

		SessionTTL:    getDurationEnv("SESSION_TTL", 24*time.Hour),
		SessionMaxAge: getDurationEnv("SESSION_MAX_AGE", 7*24*time.Hour),

		CategoryCacheTTL: getDurationEnv("CATEGORY_CACHE_TTL", 10*time.Minute),
		TagCacheTTL:      getDurationEnv("TAG_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
