package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, string]("test", time.Minute, time.Minute)

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "k", "v", 0)
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "v", got)

	require.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", time.Minute, time.Minute)

	c.Set(ctx, "short", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, string]("test", time.Minute, time.Minute)

	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "b", "2", 0)
	c.Set(ctx, "c", "3", 0)

	require.NoError(t, c.Delete(ctx, "a", "nope"))
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	_, ok = c.Get(ctx, "b")
	require.True(t, ok)

	require.NoError(t, c.Flush(ctx))
	_, ok = c.Get(ctx, "b")
	require.False(t, ok)
	_, ok = c.Get(ctx, "c")
	require.False(t, ok)
}

type regionKey string

func TestInMemoryCacheManager_NamedKeyType(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[regionKey, []string]("test", time.Minute, time.Minute)

	c.Set(ctx, regionKey("header"), []string{"logo", "title"}, 0)
	got, ok := c.Get(ctx, "header")
	require.True(t, ok)
	require.Equal(t, []string{"logo", "title"}, got)
}
