// catalog.go provides a Redis-backed JSON response cache for public catalog
// reads. Category and product listings change only through admin writes, so
// cached responses are served until an admin mutation invalidates them.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix namespaces catalog cache keys in Redis.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL bounds staleness even if an invalidation is missed.
	DefaultCatalogTTL = 5 * time.Minute
)

// Catalog caches serialized JSON responses for public catalog endpoints.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalog creates a catalog response cache with the given TTL.
func NewCatalog(client *redis.Client, ttl time.Duration) *Catalog {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &Catalog{client: client, ttl: ttl}
}

// Get retrieves a cached JSON payload. Returns (nil, false) on miss.
func (c *Catalog) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("catalog cache hit", "key", key)
	return val, true
}

// Set stores a JSON payload for a catalog key with the configured TTL.
func (c *Catalog) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, catalogKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached catalog responses by scanning for the
// prefix. Called after any admin write to categories or products.
func (c *Catalog) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("catalog cache cleared", "deleted", deleted)
	}
}

// CategoriesKey returns the cache key for the category listing.
func CategoriesKey() string {
	return "categories"
}

// ProductsKey returns the cache key for a product listing, optionally
// scoped to one category slug and a featured filter ("true" or "false").
func ProductsKey(categorySlug, featured string) string {
	key := "products"
	if categorySlug != "" {
		key += ":" + categorySlug
	}
	if featured != "" {
		key += ":featured:" + featured
	}
	return key
}
