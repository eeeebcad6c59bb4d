package storage

import (
	"SaudeSync/cache"
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("kv miss")

// KV is the key-value store snapshots are persisted to.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisKV stores values through the Redis cache.
type RedisKV struct {
	cache *cache.Cache
}

func NewRedisKV(c *cache.Cache) *RedisKV { return &RedisKV{cache: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, ok, err := r.cache.Lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.cache.Set(ctx, key, value, ttl)
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}
