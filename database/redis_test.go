package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(DefaultRedisConfig("redis://" + mr.Addr()))
	require.NoError(t, err)

	prev := RedisClient
	RedisClient = client
	t.Cleanup(func() {
		client.Close()
		RedisClient = prev
	})
	return mr
}

func TestNewLock_ExclusiveUntilReleased(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	ok, err := NewLock(ctx, "lock:k", "owner-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewLock(ctx, "lock:k", "owner-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, ReleaseLock(ctx, "lock:k", "owner-2"))
	require.NoError(t, ReleaseLock(ctx, "lock:k", "owner-1"))

	ok, err = NewLock(ctx, "lock:k", "owner-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_WithLock(t *testing.T) {
	mr := setupTestRedis(t)
	locker := NewRedisLocker(zap.NewNop())

	ran := false
	err := locker.WithLock(context.Background(), "saudesync:consultations", func() error {
		ran = true
		assert.True(t, mr.Exists("lock:saudesync:consultations"))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("lock:saudesync:consultations"))
}

func TestRedisLocker_HeldElsewhere(t *testing.T) {
	mr := setupTestRedis(t)
	require.NoError(t, mr.Set("lock:busy", "someone-else"))

	locker := NewRedisLocker(zap.NewNop())
	locker.RetryDelay = time.Millisecond

	err := locker.WithLock(context.Background(), "busy", func() error {
		t.Fatal("must not run without the lock")
		return nil
	})
	assert.ErrorIs(t, err, ErrLockNotAcquired)
}
