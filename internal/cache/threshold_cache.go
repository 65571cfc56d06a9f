// Package cache はレベル閾値を Redis に置くためのキャッシュ。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai_learning_tracker/internal/level"

	"github.com/redis/go-redis/v9"
)

const thresholdKey = "ai_learning_tracker:level_thresholds"

// ErrMiss はキャッシュに値が無い場合
var ErrMiss = errors.New("cache miss")

type RedisThresholdCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisThresholdCache(client *redis.Client, ttl time.Duration) *RedisThresholdCache {
	return &RedisThresholdCache{client: client, ttl: ttl}
}

func (c *RedisThresholdCache) Get(ctx context.Context) ([]level.Threshold, error) {
	val, err := c.client.Get(ctx, thresholdKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("RedisThresholdCache.Get: %w", err)
	}
	var tiers []level.Threshold
	if err := json.Unmarshal(val, &tiers); err != nil {
		return nil, fmt.Errorf("RedisThresholdCache.Get: decode: %w", err)
	}
	return tiers, nil
}

func (c *RedisThresholdCache) Set(ctx context.Context, tiers []level.Threshold) error {
	b, err := json.Marshal(tiers)
	if err != nil {
		return fmt.Errorf("RedisThresholdCache.Set: encode: %w", err)
	}
	return c.client.Set(ctx, thresholdKey, b, c.ttl).Err()
}

func (c *RedisThresholdCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, thresholdKey).Err()
}

// NewRedisClient は接続を確認してクライアントを返す
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
