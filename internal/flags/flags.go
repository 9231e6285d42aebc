// Package flags provides feature flag support.
// Flags are read-only after initialization and unknown flags are off.
package flags

import (
	"maps"

	"github.com/zjrosen/weekly/internal/log"
)

const (
	// FlagStorageCache wraps the storage backend in the read-through cache.
	FlagStorageCache = "storage-cache"

	// FlagReorderMouse enables mouse selection in the layout reorder TUI.
	FlagReorderMouse = "reorder-mouse"
)

// Defaults returns the value each known flag has when config omits it.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagStorageCache: true,
		FlagReorderMouse: true,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from Defaults overlaid with configured.
func New(configured map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
