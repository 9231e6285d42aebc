package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache serves lookups from a CacheManager and falls back to fn on
// a miss, caching the result. Errors from fn are never cached.
type ReadThroughCache[K ~string, V any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, key K) (V, error)
	ttl             time.Duration
	shouldSkipCache bool
}

func NewReadThroughCache[K ~string, V any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, key K) (V, error),
	ttl time.Duration,
	shouldSkipCache bool,
) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{
		cache:           cache,
		fn:              fn,
		ttl:             ttl,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, key)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, r.ttl)

	return value, nil
}

// Put overwrites the cached value for key, used after a write-through.
func (r *ReadThroughCache[K, V]) Put(ctx context.Context, key K, value V) {
	if r.shouldSkipCache {
		return
	}
	r.cache.Set(ctx, key, value, r.ttl)
}

// Invalidate drops cached values so the next Get reaches fn.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, keys ...K) error {
	if len(keys) == 0 {
		return r.cache.Flush(ctx)
	}
	return r.cache.Delete(ctx, keys...)
}
