package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/logger"
)

// Redis implements Cache backed by a Redis server. Payloads are stored as
// JSON with the configured TTL; reads deserialize back into the generic
// sequence-of-mappings shape.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis cache and verifies connectivity. A failure
// here means the caller should run uncached, not abort.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Get retrieves and deserializes a cached payload. Connectivity and
// decoding failures are logged and reported as a miss.
func (r *Redis) Get(ctx context.Context, key string) (any, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warning("Cache read failed for key %q: %v", key, err)
		return nil, false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		logger.Warning("Cache entry for key %q is not valid JSON: %v", key, err)
		return nil, false
	}
	return value, true
}

// Set serializes and stores a payload with the configured TTL. Failures
// are logged and otherwise ignored.
func (r *Redis) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warning("Cache serialization failed for key %q: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		logger.Warning("Cache write failed for key %q: %v", key, err)
		return
	}
	logger.Debug("Data cached with key %q", key)
}

// Close releases the Redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
