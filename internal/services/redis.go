package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// RideUpdatesChannel is the pub/sub channel carrying ride status changes.
const RideUpdatesChannel = "ride:updates"

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// PublishRideUpdate publishes a ride status change to Redis pub/sub.
// Publishing is best-effort; without a configured client it is a no-op.
func PublishRideUpdate(ctx context.Context, rideID uint, status string, data map[string]interface{}) error {
	if RedisClient == nil {
		return nil
	}

	updateData := map[string]interface{}{
		"rideId":    rideID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, RideUpdatesChannel, jsonData).Err()
}
