// Package cachepkg provides a JSON cache on top of redis.
package cachepkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss indicates that the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cmdable is the subset of the redis client used by RedisCache.
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache stores JSON encoded values in redis.
type RedisCache struct {
	client Cmdable
}

// NewRedisCache connects to redis and returns RedisCache.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return New(client), client, nil
}

// New returns RedisCache using the given client.
func New(client Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores value under key for ttl. Zero ttl means no expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes the value stored under key into dest.
//
// It returns ErrMiss when the key does not exist.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}

		return err
	}

	return json.Unmarshal(data, dest)
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
