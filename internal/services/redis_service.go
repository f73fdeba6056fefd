package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService provides the Redis connection used for the per-session writer
// lock. Explicitly constructed and injected; optional (a nil *RedisService
// means last-write-wins on concurrent session messages).
type RedisService struct {
	client *redis.Client
}

// NewRedisService connects to Redis and verifies the connection.
func NewRedisService(redisURL string) (*RedisService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Redis connection established")
	return &RedisService{client: client}, nil
}

// Client returns the underlying Redis client.
func (r *RedisService) Client() *redis.Client {
	return r.client
}

// Close closes the Redis connection.
func (r *RedisService) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Ping checks if Redis is healthy.
func (r *RedisService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// AcquireSessionLock takes the single-writer lock for a session. Returns
// false when another message for the same session is already in flight.
func (r *RedisService) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, sessionLockKey(sessionID), 1, ttl).Result()
}

// ReleaseSessionLock releases the single-writer lock for a session.
func (r *RedisService) ReleaseSessionLock(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionLockKey(sessionID)).Err()
}

func sessionLockKey(sessionID string) string {
	return "session:lock:" + sessionID
}
