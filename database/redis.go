package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// ErrLockNotAcquired is returned when a lock stays held by someone else after all retries.
var ErrLockNotAcquired = errors.New("failed to acquire lock")

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// DefaultRedisConfig returns the pool settings used in production.
func DefaultRedisConfig(url string) RedisConfig {
	return RedisConfig{
		URL:          url,
		PoolSize:     10,
		DialTimeout:  30 * time.Second,
		MinIdleConns: 5,
		ReadTimeout:  10 * time.Second,
		MaxRetries:   3,
	}
}

// InitializeRedis connects the global Redis client.
func InitializeRedis(config RedisConfig, log *zap.Logger) error {
	client, err := NewRedisClient(config)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	RedisClient = client

	log.Info("Redis connection initialized",
		zap.Int("pool_size", config.PoolSize),
		zap.Int("min_idle_conns", config.MinIdleConns),
		zap.Duration("dial_timeout", config.DialTimeout),
		zap.Int("max_retries", config.MaxRetries),
	)
	return nil
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(config RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns
	opt.DialTimeout = config.DialTimeout
	opt.ReadTimeout = config.ReadTimeout
	opt.MaxRetries = config.MaxRetries

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}
	return client, nil
}

// NewLock acquires a distributed lock using Redis
func NewLock(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if RedisClient == nil {
		return false, errors.New("Redis client is not initialized")
	}

	return RedisClient.SetNX(ctx, key, value, ttl).Result()
}

// ReleaseLock releases a distributed lock using Redis with Lua scripting
func ReleaseLock(ctx context.Context, key string, value string) error {
	if RedisClient == nil {
		return errors.New("Redis client is not initialized")
	}

	const releaseLockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
	`

	script := redis.NewScript(releaseLockScript)
	result, err := script.Run(ctx, RedisClient, []string{key}, value).Result()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result.(int64) == 0 {
		return errors.New("lock release failed: not the lock owner")
	}
	return nil
}

// RedisLocker serializes writers across processes with NewLock/ReleaseLock.
type RedisLocker struct {
	TTL        time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Log        *zap.Logger
}

// NewRedisLocker returns a locker with the retry policy used for snapshot writes.
func NewRedisLocker(log *zap.Logger) *RedisLocker {
	return &RedisLocker{
		TTL:        10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 200 * time.Millisecond,
		Log:        log,
	}
}

// WithLock runs fn while holding the lock for key.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	lockKey := "lock:" + key
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < l.MaxRetries; i++ {
		locked, err = NewLock(ctx, lockKey, lockValue, l.TTL)
		if err == nil && locked {
			break
		}
		if i < l.MaxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.RetryDelay):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockNotAcquired, err)
	}
	if !locked {
		return ErrLockNotAcquired
	}
	defer func() {
		if err := ReleaseLock(ctx, lockKey, lockValue); err != nil {
			l.Log.Warn("Failed to release lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	return fn()
}

// LogRedisPool logs the connection pool statistics for monitoring
func LogRedisPool(log *zap.Logger) {
	if RedisClient == nil {
		return
	}
	stats := RedisClient.PoolStats()
	log.Info("Redis pool stats",
		zap.Uint32("total", stats.TotalConns),
		zap.Uint32("idle", stats.IdleConns),
		zap.Uint32("stale", stats.StaleConns),
	)
}
