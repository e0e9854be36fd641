//go:build integration

package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedStore_ServesAndInvalidates(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Del(ctx, cacheKeyProducts, cacheKeyBrands).Err())

	mem := NewMemStore(DemoCatalog())
	store := NewCachedStore(mem, rdb, time.Minute, zap.NewNop())

	first, err := store.ListProducts(ctx)
	require.NoError(t, err)
	n, err := rdb.Exists(ctx, cacheKeyProducts).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cached, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, names(first), names(cached))

	ok, err := store.UpdateBrand(ctx, Brand{ID: "b-glow", Name: "Glow Labs", Slug: "glow"})
	require.NoError(t, err)
	require.True(t, ok)

	n, err = rdb.Exists(ctx, cacheKeyProducts, cacheKeyBrands).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	after, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Glow Labs", after[0].Brand.Name)
}
