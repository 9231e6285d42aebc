// Package cachemanager holds short-lived in-process caches in front of slower
// lookups, such as sqlite-backed storage reads.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values of type V under string-like keys with a TTL.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
