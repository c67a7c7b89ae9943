package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const trackingCacheTTL = time.Minute

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
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func trackingKey(trackingNumber string) string {
	return fmt.Sprintf("tracking:%s", trackingNumber)
}

// CacheTracking stores a serialized public tracking response. Tracking
// lookups are read-heavy and the payload only changes on a transition,
// so a short TTL plus invalidation keeps it honest.
func CacheTracking(ctx context.Context, trackingNumber string, payload interface{}) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	RedisClient.Set(ctx, trackingKey(trackingNumber), data, trackingCacheTTL)
}

// GetCachedTracking retrieves a cached tracking response.
func GetCachedTracking(ctx context.Context, trackingNumber string) ([]byte, bool) {
	if RedisClient == nil {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, trackingKey(trackingNumber)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// InvalidateTracking drops the cached tracking response after a status
// transition.
func InvalidateTracking(ctx context.Context, trackingNumber string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, trackingKey(trackingNumber))
}

// PublishShipmentUpdate publishes a status transition to Redis pub/sub
// for any interested consumer (dashboards, downstream integrations).
func PublishShipmentUpdate(ctx context.Context, shipmentID uint, trackingNumber string, status models.ShipmentStatus) {
	if RedisClient == nil {
		return
	}

	updateData := map[string]interface{}{
		"shipmentId":     shipmentID,
		"trackingNumber": trackingNumber,
		"status":         status,
		"timestamp":      time.Now().Unix(),
	}

	data, err := json.Marshal(updateData)
	if err != nil {
		return
	}

	RedisClient.Publish(ctx, "shipment:updates", data)
}
