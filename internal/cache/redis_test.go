package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/budget-manager/internal/config"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestAttempts_Empty(t *testing.T) {
	cache, _ := setupTestCache(t)

	n, err := cache.Attempts(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRegisterFailure_CountsAndSetsWindow(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		n, err := cache.RegisterFailure(ctx, "user@example.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err := cache.Attempts(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, time.Minute, mr.TTL("login_attempts:user@example.com"))
}

func TestRegisterFailure_WindowExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.RegisterFailure(ctx, "user@example.com", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	n, err := cache.Attempts(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRegisterFailure_RestartsAfterWindow(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	for range 2 {
		_, err := cache.RegisterFailure(ctx, "user@example.com|10.0.0.1", time.Minute)
		require.NoError(t, err)
	}
	mr.FastForward(30 * time.Second)
	assert.Equal(t, 30*time.Second, mr.TTL("login_attempts:user@example.com|10.0.0.1"))

	mr.FastForward(time.Minute)

	n, err := cache.RegisterFailure(ctx, "user@example.com|10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, time.Minute, mr.TTL("login_attempts:user@example.com|10.0.0.1"))
}

func TestRegisterFailure_RedisDown(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Close()

	_, err := cache.RegisterFailure(context.Background(), "user@example.com", time.Minute)
	assert.Error(t, err)
}

func TestRegisterFailure_KeysArePerEmail(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.RegisterFailure(ctx, "a@example.com", time.Minute)
	require.NoError(t, err)

	n, err := cache.Attempts(ctx, "A@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReset(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.RegisterFailure(ctx, "user@example.com", time.Minute)
	require.NoError(t, err)
	require.NoError(t, cache.Reset(ctx, "user@example.com"))

	n, err := cache.Attempts(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAttempts_RedisDown(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Close()

	_, err := cache.Attempts(context.Background(), "user@example.com")
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:9999",
		DialTimeout:  200 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}
