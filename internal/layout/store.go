// Package layout persists the user's chosen order of orderable UI items
// (header elements, home cards) and repairs it against the current set of
// known items on every open.
package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/log"
)

// Store holds the current order for one storage key.
type Store struct {
	mu       sync.RWMutex
	storage  kv.Storage
	key      string
	defaults []string
	order    []string
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	persistReconciled bool
}

// WithPersistReconciled writes the reconciled order back on Open when it
// differs from what was stored. Without it, stored data is only replaced by
// the next Write.
func WithPersistReconciled() Option {
	return func(o *openOptions) { o.persistReconciled = true }
}

// Open loads the order stored under key and reconciles it against defaults.
// It never fails: absent, corrupt or unreadable data yields defaults.
func Open(ctx context.Context, storage kv.Storage, key string, defaults []string, opts ...Option) *Store {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		storage:  storage,
		key:      key,
		defaults: slices.Clone(defaults),
	}

	stored, ok := load(ctx, storage, key)
	if !ok {
		s.order = slices.Clone(defaults)
		return s
	}

	s.order = Reconcile(stored, defaults)

	if o.persistReconciled && !slices.Equal(stored, s.order) {
		if err := s.persist(ctx, s.order); err != nil {
			log.ErrorErr(log.CatLayout, "persisting reconciled order failed", err, "key", key)
		}
	}

	return s
}

// load returns the stored order, or ok=false when there is none usable.
func load(ctx context.Context, storage kv.Storage, key string) ([]string, bool) {
	raw, found, err := storage.Get(ctx, key)
	if err != nil {
		log.ErrorErr(log.CatLayout, "reading layout failed, using defaults", err, "key", key)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		log.Warn(log.CatLayout, "stored layout is corrupt, using defaults", "key", key, "value", raw)
		return nil, false
	}

	// Non-string members can never match a default, so they are dropped here
	// rather than failing the whole value.
	stored := make([]string, 0, len(items))
	for _, item := range items {
		if id, ok := item.(string); ok {
			stored = append(stored, id)
		}
	}
	return stored, true
}

// Read returns a copy of the current order.
func (s *Store) Read() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Write makes order current and persists it under the store's key. order is
// not validated against the defaults. If persisting fails the error is
// returned, but Read already reflects the new order.
func (s *Store) Write(ctx context.Context, order []string) error {
	s.mu.Lock()
	s.order = slices.Clone(order)
	s.mu.Unlock()

	return s.persist(ctx, order)
}

func (s *Store) persist(ctx context.Context, order []string) error {
	if order == nil {
		order = []string{}
	}
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding layout %q: %w", s.key, err)
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("saving layout %q: %w", s.key, err)
	}
	log.Debug(log.CatLayout, "layout saved", "key", s.key, "order", string(data))
	return nil
}

// Reload re-reads storage and reconciles again, picking up writes made by
// another process.
func (s *Store) Reload(ctx context.Context) []string {
	order := slices.Clone(s.defaults)
	if stored, ok := load(ctx, s.storage, s.key); ok {
		order = Reconcile(stored, s.defaults)
	}

	s.mu.Lock()
	s.order = order
	s.mu.Unlock()

	return slices.Clone(order)
}

// Reset makes the defaults current and persists them.
func (s *Store) Reset(ctx context.Context) error {
	return s.Write(ctx, s.defaults)
}

func (s *Store) Key() string { return s.key }

// Defaults returns a copy of the defaults the store was opened with.
func (s *Store) Defaults() []string { return slices.Clone(s.defaults) }
