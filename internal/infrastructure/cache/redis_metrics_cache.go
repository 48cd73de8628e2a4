package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMetricsCache stores serialized report payloads in Redis.
// Suitable for distributed deployments where multiple instances
// should serve the same cached metrics.
type RedisMetricsCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisMetricsCache creates a new Redis-backed metrics cache
func NewRedisMetricsCache(cfg RedisConfig) (*RedisMetricsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisMetricsCache{
		client:    client,
		keyPrefix: "aptos:",
	}, nil
}

// NewRedisMetricsCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisMetricsCacheWithClient(client *redis.Client, keyPrefix string) *RedisMetricsCache {
	if keyPrefix == "" {
		keyPrefix = "aptos:"
	}
	return &RedisMetricsCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get loads the cached payload into dest. A miss returns (false, nil).
func (c *RedisMetricsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached payload for %s: %w", key, err)
	}
	return true, nil
}

// Set stores the payload under the key with a TTL
func (c *RedisMetricsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode payload for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the given keys
func (c *RedisMetricsCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.keyPrefix + key
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisMetricsCache) Close() error {
	return c.client.Close()
}
