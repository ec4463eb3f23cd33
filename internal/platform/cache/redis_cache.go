package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// indexKey tracks every cached report key so invalidation can drop them all
// without scanning the keyspace.
const indexKey = "reports:index"

type RedisReportCache struct {
	client *redis.Client
}

func NewRedisReportCache(addr string, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisReportCache{client: client}
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return err
	}
	return c.client.SAdd(ctx, indexKey, key).Err()
}

func (c *RedisReportCache) InvalidateReports(ctx context.Context) {
	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		slog.Warn("Failed to list cached report keys for invalidation", slog.String("error", err.Error()))
		return
	}
	if len(keys) == 0 {
		return
	}
	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Failed to invalidate cached reports", slog.String("error", err.Error()))
	}
}
