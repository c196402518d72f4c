package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	menuKey  = "menu:all"
	statsKey = "stats:dashboard"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetMenu(ctx context.Context) ([]domain.MenuItem, bool, error) {
	var items []domain.MenuItem
	ok, err := c.getJSON(ctx, menuKey, &items)
	return items, ok, err
}

func (c *RedisCache) SetMenu(ctx context.Context, items []domain.MenuItem) error {
	return c.setJSON(ctx, menuKey, items)
}

func (c *RedisCache) InvalidateMenu(ctx context.Context) error {
	return c.Client.Del(ctx, menuKey).Err()
}

func (c *RedisCache) GetStats(ctx context.Context) (*domain.Stats, bool, error) {
	var stats domain.Stats
	ok, err := c.getJSON(ctx, statsKey, &stats)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &stats, true, nil
}

func (c *RedisCache) SetStats(ctx context.Context, stats *domain.Stats) error {
	return c.setJSON(ctx, statsKey, stats)
}

func (c *RedisCache) InvalidateStats(ctx context.Context) error {
	return c.Client.Del(ctx, statsKey).Err()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A payload we cannot read is treated as a miss and dropped.
		_ = c.Client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}
