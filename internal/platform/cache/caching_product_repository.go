// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"uventory_backend/internal/feature/products/domain/entity"
	"uventory_backend/internal/feature/products/usecase"
)

// DefaultTTL is used when a non-positive TTL is given.
const DefaultTTL = 5 * time.Minute

// CachingProductRepository decorates a ProductRepository with a Redis read-through cache.
// Reads are cached per query; every successful write drops the whole namespace.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
// A nil rdb disables caching.
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create adds a product and invalidates cached reads.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves a product and invalidates cached reads.
func (c *CachingProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// SoftDelete deletes a product and invalidates cached reads.
func (c *CachingProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// ListActive returns active products, checking the cache first.
func (c *CachingProductRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	return readThrough(ctx, c, c.namespace+":list", func() ([]entity.Product, error) {
		return c.inner.ListActive(ctx)
	})
}

// SearchByName returns matching active products, checking the cache first.
func (c *CachingProductRepository) SearchByName(ctx context.Context, name string) ([]entity.Product, error) {
	key := c.namespace + ":search:" + searchKey(name)
	return readThrough(ctx, c, key, func() ([]entity.Product, error) {
		return c.inner.SearchByName(ctx, name)
	})
}

// FindByID returns one product, checking the cache first. Misses are not cached.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return readThrough(ctx, c, c.namespace+":id:"+id.String(), func() (*entity.Product, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// readThrough returns the cached value for key or loads and stores it.
// Redis failures fall back to load.
func readThrough[T any](ctx context.Context, c *CachingProductRepository, key string, load func() (T, error)) (T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	// Best effort: the write already succeeded
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// searchKey normalizes a search term into a key segment.
// The search is case-insensitive, so terms differing only in case share one entry.
// Escaping keeps ':' and glob characters out of the key.
func searchKey(name string) string {
	return url.QueryEscape(strings.ToLower(name))
}
