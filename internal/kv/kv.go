// Package kv defines the key-value storage capability every persisted record
// in weekly goes through, plus in-memory, cached and notifying variants.
package kv

import (
	"context"
	"maps"
	"sync"
)

// Storage is a string-keyed, string-valued store.
//
// Get reports ok=false for an absent key; err is reserved for backend failure.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is a Storage held in a map. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Storage = (*Memory)(nil)

// NewMemory returns a Memory seeded with a copy of initial.
func NewMemory(initial map[string]string) *Memory {
	data := make(map[string]string, len(initial))
	maps.Copy(data, initial)
	return &Memory{data: data}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Snapshot returns a copy of every stored pair.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
