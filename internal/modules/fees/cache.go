// README: Redis-backed snapshot cache of the active fee table.
package fees

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "fees:active"

// TableSource yields the current active fee snapshot for lookups.
type TableSource interface {
	ActiveTable(ctx context.Context) (Table, error)
}

// Cache stores the whole active table as one JSON value. Writers replace or
// drop the key atomically, so readers always observe a complete snapshot and
// never a table mid-update.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (Table, bool, error) {
	val, err := c.redis.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var t Table
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		// A corrupt snapshot is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return t, true, nil
}

func (c *Cache) Set(ctx context.Context, t Table) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, snapshotKey, raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, snapshotKey).Err()
}

// CachedTableSource serves lookups from the cache, falling back to the
// underlying source on a miss and repopulating the snapshot.
type CachedTableSource struct {
	source TableSource
	cache  *Cache
}

func NewCachedTableSource(source TableSource, cache *Cache) *CachedTableSource {
	return &CachedTableSource{source: source, cache: cache}
}

func (s *CachedTableSource) ActiveTable(ctx context.Context) (Table, error) {
	if t, ok, err := s.cache.Get(ctx); err == nil && ok {
		return t, nil
	}
	t, err := s.source.ActiveTable(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, t)
	return t, nil
}
