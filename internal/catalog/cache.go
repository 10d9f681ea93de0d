package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/farmlinkhq/farmlink-backend/internal/filters"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
	"github.com/farmlinkhq/farmlink-backend/pkg/redis"
)

// cacheStore is the slice of the redis client the browse cache needs.
type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	CacheKey(parts ...string) string
}

// browseCache is a read-through cache over catalog pages, keyed by the
// canonical query signature. Invalidation bumps a generation counter instead
// of scanning keys; stale generations fall out via TTL.
type browseCache struct {
	store cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

func newBrowseCache(store cacheStore, ttl time.Duration, logg *logger.Logger) *browseCache {
	if store == nil {
		return nil
	}
	return &browseCache{store: store, ttl: ttl, logg: logg}
}

// Lookup returns the cached page for the query, if present. Cache failures
// are logged and treated as misses so browsing survives a redis outage.
func (c *browseCache) Lookup(ctx context.Context, query filters.ApiQuery) (*BrowseResult, bool) {
	if c == nil {
		return nil, false
	}
	key, err := c.pageKey(ctx, query)
	if err != nil {
		c.warn(ctx, "browse cache key", err)
		return nil, false
	}
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn(ctx, "browse cache read", err)
		}
		return nil, false
	}
	var result BrowseResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.warn(ctx, "browse cache decode", err)
		return nil, false
	}
	return &result, true
}

// Store caches the page under the current generation.
func (c *browseCache) Store(ctx context.Context, query filters.ApiQuery, result *BrowseResult) {
	if c == nil || result == nil {
		return
	}
	key, err := c.pageKey(ctx, query)
	if err != nil {
		c.warn(ctx, "browse cache key", err)
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		c.warn(ctx, "browse cache encode", err)
		return
	}
	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		c.warn(ctx, "browse cache write", err)
	}
}

// Invalidate drops every cached page by advancing the generation counter.
func (c *browseCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if _, err := c.store.Incr(ctx, c.generationKey()); err != nil {
		c.warn(ctx, "browse cache invalidate", err)
	}
}

func (c *browseCache) pageKey(ctx context.Context, query filters.ApiQuery) (string, error) {
	generation, err := c.generation(ctx)
	if err != nil {
		return "", err
	}
	return c.store.CacheKey("browse", "g"+strconv.FormatInt(generation, 10), querySignature(query)), nil
}

func (c *browseCache) generationKey() string {
	return c.store.CacheKey("browse", "generation")
}

func (c *browseCache) generation(ctx context.Context) (int64, error) {
	raw, err := c.store.Get(ctx, c.generationKey())
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (c *browseCache) warn(ctx context.Context, msg string, err error) {
	if c.logg != nil {
		c.logg.Warn(ctx, msg+": "+err.Error())
	}
}

// querySignature derives a stable cache key fragment from the query. The
// JSON encoding of ApiQuery is deterministic, so equal queries always hash
// to the same signature.
func querySignature(query filters.ApiQuery) string {
	payload, err := json.Marshal(query)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:16])
}
