package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	c, err := NewRedisCache(&RedisConfig{
		Host:         mr.Host(),
		Port:         port,
		PoolSize:     2,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		KeyPrefix:    "test:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestNewRedisCache_NilConfig(t *testing.T) {
	_, err := NewRedisCache(nil)
	assert.Error(t, err)
}

func TestRedisCache_GetIntDelete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	got, err := c.GetInt(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = c.IncrementWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:k"))

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("test:k"))
}

func TestRedisCache_IncrementWithTTL(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	n, err := c.IncrementWithTTL(ctx, "attempts", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mr.FastForward(30 * time.Second)

	n, err = c.IncrementWithTTL(ctx, "attempts", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// The window is anchored at the first increment.
	assert.Equal(t, 30*time.Second, mr.TTL("test:attempts"))

	mr.FastForward(31 * time.Second)
	got, err := c.GetInt(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}
