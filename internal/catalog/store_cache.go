package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyProducts = "storefront:catalog:products"
	cacheKeyBrands   = "storefront:catalog:brands"
)

// CachedStore serves product and brand listings from redis, falling back to
// the wrapped store whenever redis misses or fails. Brand writes drop both
// keys since products embed their brand.
type CachedStore struct {
	Store
	rdb redis.Cmdable
	ttl time.Duration
	log *zap.Logger
}

func NewCachedStore(inner Store, rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) *CachedStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedStore{Store: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *CachedStore) Ping(ctx context.Context) error {
	if err := c.Store.Ping(ctx); err != nil {
		return err
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *CachedStore) ListProducts(ctx context.Context) ([]Product, error) {
	return cached(ctx, c, cacheKeyProducts, c.Store.ListProducts)
}

func (c *CachedStore) ListBrands(ctx context.Context) ([]Brand, error) {
	return cached(ctx, c, cacheKeyBrands, c.Store.ListBrands)
}

func (c *CachedStore) CreateBrand(ctx context.Context, b Brand) error {
	if err := c.Store.CreateBrand(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedStore) UpdateBrand(ctx context.Context, b Brand) (bool, error) {
	ok, err := c.Store.UpdateBrand(ctx, b)
	if err != nil || !ok {
		return ok, err
	}
	c.invalidate(ctx)
	return true, nil
}

func (c *CachedStore) invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, cacheKeyProducts, cacheKeyBrands).Err(); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}

func cached[T any](ctx context.Context, c *CachedStore, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if jerr := json.Unmarshal(raw, &out); jerr == nil {
			return out, nil
		}
		c.log.Warn("catalog cache entry corrupt", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if b, jerr := json.Marshal(out); jerr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return out, nil
}
