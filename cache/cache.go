package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotInitialized is returned when the cache has no Redis client.
var ErrNotInitialized = errors.New("Redis client is not initialized")

type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache instance, ensuring that the client is not nil.
func NewCache(client *redis.Client) (*Cache, error) {
	if client == nil {
		return nil, ErrNotInitialized
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return ErrNotInitialized
	}
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return ErrNotInitialized
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Lookup returns the value at key and whether the key exists.
func (c *Cache) Lookup(ctx context.Context, key string) (string, bool, error) {
	if c.client == nil {
		return "", false, ErrNotInitialized
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// PushCapped prepends value to the list at key and keeps at most max entries.
func (c *Cache) PushCapped(ctx context.Context, key string, value interface{}, max int64) error {
	if c.client == nil {
		return ErrNotInitialized
	}
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, value)
	if max > 0 {
		pipe.LTrim(ctx, key, 0, max-1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Range returns list entries from start to stop inclusive, newest first.
func (c *Cache) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if c.client == nil {
		return nil, ErrNotInitialized
	}
	return c.client.LRange(ctx, key, start, stop).Result()
}
