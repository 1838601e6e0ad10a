package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/cache"
)

type cachedSalon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return s, cache.NewRedisCache(client).(*cache.RedisCache)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	want := cachedSalon{ID: "s-1", Name: "Glow"}
	require.NoError(t, c.Set(ctx, cache.SalonKey(want.ID), want, time.Minute))

	var got cachedSalon
	hit, err := c.Get(ctx, cache.SalonKey(want.ID), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := newTestCache(t)

	var got cachedSalon
	hit, err := c.Get(context.Background(), "sms:missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Expiry(t *testing.T) {
	s, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "sms:short", cachedSalon{ID: "x"}, time.Second))
	s.FastForward(2 * time.Second)

	var got cachedSalon
	hit, err := c.Get(ctx, "sms:short", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Delete(t *testing.T) {
	s, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cache.SalonKey("a"), cachedSalon{ID: "a"}, time.Minute))
	require.NoError(t, c.Set(ctx, cache.OpeningHoursKey("a"), []int{1}, time.Minute))
	require.NoError(t, c.Delete(ctx, cache.SalonKey("a"), cache.OpeningHoursKey("a")))
	require.NoError(t, c.Delete(ctx))

	assert.False(t, s.Exists(cache.SalonKey("a")))
	assert.False(t, s.Exists(cache.OpeningHoursKey("a")))
}

func TestRedisCache_CorruptValue(t *testing.T) {
	s, c := newTestCache(t)
	require.NoError(t, s.Set("sms:bad", "{not json"))

	var got cachedSalon
	hit, err := c.Get(context.Background(), "sms:bad", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNoopCache(t *testing.T) {
	var c cache.NoopCache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	hit, err := c.Get(ctx, "k", new(int))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}
