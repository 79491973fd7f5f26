package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minjae-dev/trips/internal/trip/types"
)

const redisKeyPrefix = "trips:search"

// Redis caches raw search responses in Redis so multiple service instances
// share one cache. Redis failures degrade to a plain fetch rather than
// failing the search.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(addr, password string, db int, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl, logger: logger}, nil
}

// GetOrFetch implements Cache.
func (c *Redis) GetOrFetch(ctx context.Context, key string, fetch func() (*types.SearchResponse, error)) (*types.SearchResponse, bool, error) {
	redisKey := redisKeyPrefix + ":" + key

	data, err := c.client.Get(ctx, redisKey).Bytes()
	if err == nil {
		var resp types.SearchResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, true, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", redisKey)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis get failed, fetching upstream", "key", redisKey, "error", err)
	}

	resp, err := fetch()
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := c.client.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("redis set failed", "key", redisKey, "error", err)
		}
	}
	return resp, false, nil
}

// Close releases the Redis connection.
func (c *Redis) Close() error {
	return c.client.Close()
}
