package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheRoundtrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	found, err := GetCache(ctx, rdb, "k", &payload{})
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", payload{Name: "Blue Bottle"}, time.Minute))

	var got payload
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Blue Bottle", got.Name)

	require.NoError(t, DeleteCache(ctx, rdb, "k"))
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeleteCacheByPrefix(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "cafes:list:page=1", 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "cafes:list:page=2", 2, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "session:abc", 3, time.Minute))

	require.NoError(t, DeleteCacheByPrefix(ctx, rdb, "cafes:"))

	var v int
	found, err := GetCache(ctx, rdb, "cafes:list:page=1", &v)
	require.NoError(t, err)
	require.False(t, found)
	found, err = GetCache(ctx, rdb, "cafes:list:page=2", &v)
	require.NoError(t, err)
	require.False(t, found)

	// Unrelated keys survive
	found, err = GetCache(ctx, rdb, "session:abc", &v)
	require.NoError(t, err)
	require.True(t, found)
}
