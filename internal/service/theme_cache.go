package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/profilsaya/backend/internal/theme"
)

const themeSnapshotKey = "theme:snapshot:%s"

// RedisThemeCache keeps theme editing snapshots in Redis.
type RedisThemeCache struct {
	redis *redis.Client
	ttl   time.Duration
}

var _ theme.SnapshotStore = (*RedisThemeCache)(nil)

// NewRedisThemeCache stores snapshots for ttl after their last update.
func NewRedisThemeCache(client *redis.Client, ttl time.Duration) *RedisThemeCache {
	return &RedisThemeCache{redis: client, ttl: ttl}
}

func snapshotKey(userID string) string {
	return fmt.Sprintf(themeSnapshotKey, userID)
}

func (c *RedisThemeCache) LoadSnapshot(ctx context.Context, userID string) ([]byte, error) {
	data, err := c.redis.Get(ctx, snapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme snapshot from Redis: %w", err)
	}
	return data, nil
}

func (c *RedisThemeCache) SaveSnapshot(ctx context.Context, userID string, data []byte) error {
	if err := c.redis.Set(ctx, snapshotKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save theme snapshot to Redis: %w", err)
	}
	return nil
}

func (c *RedisThemeCache) DeleteSnapshot(ctx context.Context, userID string) error {
	if err := c.redis.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete theme snapshot from Redis: %w", err)
	}
	return nil
}

type memorySnapshot struct {
	data    []byte
	expires time.Time
}

// MemoryThemeCache keeps snapshots in process memory. It stands in for
// RedisThemeCache when Redis is unreachable, so edits survive between
// requests of a single instance.
type MemoryThemeCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memorySnapshot
}

var _ theme.SnapshotStore = (*MemoryThemeCache)(nil)

// NewMemoryThemeCache stores snapshots for ttl after their last update.
func NewMemoryThemeCache(ttl time.Duration) *MemoryThemeCache {
	return &MemoryThemeCache{ttl: ttl, now: time.Now, entries: make(map[string]memorySnapshot)}
}

func (c *MemoryThemeCache) LoadSnapshot(_ context.Context, userID string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[userID]
	if !ok {
		return nil, nil
	}
	if c.expired(entry) {
		delete(c.entries, userID)
		return nil, nil
	}
	return append([]byte(nil), entry.data...), nil
}

func (c *MemoryThemeCache) SaveSnapshot(_ context.Context, userID string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, id)
		}
	}
	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}
	c.entries[userID] = memorySnapshot{data: append([]byte(nil), data...), expires: expires}
	return nil
}

func (c *MemoryThemeCache) DeleteSnapshot(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

func (c *MemoryThemeCache) expired(entry memorySnapshot) bool {
	return !entry.expires.IsZero() && !c.now().Before(entry.expires)
}

// SetClock replaces the time source. Tests use it to expire entries.
func (c *MemoryThemeCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
