package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheWithClient(client, "test:")
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	_, found, err := c.Get(ctx, "colors")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "colors", []byte(`["RED"]`), time.Minute))
	assert.True(t, mr.Exists("test:colors"), "key carries the prefix")

	val, found, err := c.Get(ctx, "colors")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["RED"]`, string(val))

	mr.FastForward(2 * time.Minute)
	_, found, err = c.Get(ctx, "colors")
	require.NoError(t, err)
	assert.False(t, found, "entry expires with its ttl")
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)
	mr.Close()

	_, _, err := c.Get(ctx, "colors")
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, "colors", []byte("x"), time.Minute))
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	c, err := NewRedisCache(config.RedisConfig{Host: mr.Host(), Port: port}, "")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, defaultKeyPrefix, c.keyPrefix)

	_, err = NewRedisCache(config.RedisConfig{Host: "127.0.0.1", Port: 1}, "")
	assert.Error(t, err)
}
