package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/weekly/internal/cachemanager"
	"github.com/zjrosen/weekly/internal/log"
)

// lookup is what the cache holds per key, so absent keys are cached too.
type lookup struct {
	value string
	ok    bool
}

// Cached serves reads from an in-process cache in front of another Storage.
// Writes go to the backend first and then refresh the cache.
type Cached struct {
	backend Storage
	reads   *cachemanager.ReadThroughCache[string, lookup]
}

var _ Storage = (*Cached)(nil)

// NewCached wraps backend. A ttl of zero uses the cache default.
func NewCached(backend Storage, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	cache := cachemanager.NewInMemoryCacheManager[string, lookup]("kv", ttl, cachemanager.DefaultCleanupInterval)
	c := &Cached{backend: backend}
	c.reads = cachemanager.NewReadThroughCache(cache, c.load, ttl, false)
	return c
}

func (c *Cached) load(ctx context.Context, key string) (lookup, error) {
	v, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		return lookup{}, err
	}
	return lookup{value: v, ok: ok}, nil
}

func (c *Cached) Get(ctx context.Context, key string) (string, bool, error) {
	l, err := c.reads.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return l.value, l.ok, nil
}

func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.backend.Set(ctx, key, value); err != nil {
		_ = c.reads.Invalidate(ctx, key)
		return err
	}
	c.reads.Put(ctx, key, lookup{value: value, ok: true})
	return nil
}

func (c *Cached) Delete(ctx context.Context, key string) error {
	if err := c.backend.Delete(ctx, key); err != nil {
		_ = c.reads.Invalidate(ctx, key)
		return err
	}
	c.reads.Put(ctx, key, lookup{})
	return nil
}

// Invalidate drops cached entries for keys, or everything when none are given.
func (c *Cached) Invalidate(ctx context.Context, keys ...string) error {
	if err := c.reads.Invalidate(ctx, keys...); err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	log.Debug(log.CatCache, "invalidated", "keys", len(keys))
	return nil
}
