package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// InMemoryMetricsCache is a process-local metrics cache.
// Suitable for single-instance deployments and testing; entries are not
// shared across instances. Payloads go through JSON the same way the Redis
// implementation serializes them, so both behave identically to callers.
type InMemoryMetricsCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryMetricsCache creates an empty in-memory metrics cache
func NewInMemoryMetricsCache() *InMemoryMetricsCache {
	return &InMemoryMetricsCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get loads the cached payload into dest. A miss or an expired entry
// returns (false, nil).
func (c *InMemoryMetricsCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached payload for %s: %w", key, err)
	}
	return true, nil
}

// Set stores the payload under the key with a TTL. A non-positive TTL
// stores the entry without expiration.
func (c *InMemoryMetricsCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode payload for %s: %w", key, err)
	}

	entry := inMemoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate drops the given keys
func (c *InMemoryMetricsCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}
