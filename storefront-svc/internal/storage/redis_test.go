package storage

import (
	"context"
	"testing"
	"time"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCache_Menu(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	_, ok, err := cache.GetMenu(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	items := []domain.MenuItem{{ID: 1, Name: "Jollof", Price: decimal.RequireFromString("45.5"), Category: "Mains"}}
	require.NoError(t, cache.SetMenu(ctx, items))
	assert.Equal(t, time.Minute, mr.TTL(menuKey))

	got, ok, err := cache.GetMenu(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Jollof", got[0].Name)
	assert.True(t, items[0].Price.Equal(got[0].Price))

	require.NoError(t, cache.InvalidateMenu(ctx))
	assert.False(t, mr.Exists(menuKey))
}

func TestRedisCache_Stats(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	stats := &domain.Stats{TotalRevenue: decimal.RequireFromString("99.99"), TotalOrders: 3, TotalCustomers: 2, TodaysOrders: 1}
	require.NoError(t, cache.SetStats(ctx, stats))

	got, ok, err := cache.GetStats(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.TotalOrders)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.GetStats(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := setupCache(t)
	require.NoError(t, mr.Set(statsKey, "{not json"))

	_, ok, err := cache.GetStats(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(statsKey))
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, mr := setupCache(t)
	mr.Close()

	_, _, err := cache.GetMenu(context.Background())
	assert.Error(t, err)
}
