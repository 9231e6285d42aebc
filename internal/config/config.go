// Package config provides configuration types and defaults for weekly.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/zjrosen/weekly/internal/layout"
	"github.com/zjrosen/weekly/internal/paths"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for weekly.
type Config struct {
	Storage StorageConfig   `mapstructure:"storage"`
	Admin   AdminConfig     `mapstructure:"admin"`
	Layout  LayoutConfig    `mapstructure:"layout"`
	UI      UIConfig        `mapstructure:"ui"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// StorageConfig selects and tunes the key-value backend.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "memory". Memory loses everything on exit.
	Backend string `mapstructure:"backend"`

	// Path is the sqlite file. Default: ~/.config/weekly/weekly.db
	Path string `mapstructure:"path"`

	// CacheTTL bounds how long a read is served from the cache when the
	// storage-cache flag is on.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AdminConfig holds the admin password. It is compared in plaintext.
type AdminConfig struct {
	Password string `mapstructure:"password"`
}

// LayoutConfig tunes the orderable regions.
type LayoutConfig struct {
	// Regions overrides the default identifiers of a region by name.
	Regions map[string][]string `mapstructure:"regions"`

	// PersistReconciled writes a repaired order back as soon as it is read.
	PersistReconciled bool `mapstructure:"persist_reconciled"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
	Width         int    `mapstructure:"width"`          // wrap width for rendered reports
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			Path:     paths.DefaultDBPath(),
			CacheTTL: 5 * time.Minute,
		},
		Admin: AdminConfig{
			Password: "admin123",
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			Width:         100,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     paths.DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// ValidateStorage checks storage configuration for errors.
func ValidateStorage(s StorageConfig) error {
	switch s.Backend {
	case "", BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, s.Backend)
	}
	if s.Backend == BackendSQLite && s.Path == "" {
		return fmt.Errorf("storage.path is required when backend is %q", BackendSQLite)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("storage.cache_ttl must not be negative, got %s", s.CacheTTL)
	}
	return nil
}

// ValidateLayout checks region overrides: names must exist and identifiers
// must be non-empty and unique.
func ValidateLayout(l LayoutConfig) error {
	for name, ids := range l.Regions {
		if _, err := layout.LookupRegion(name, nil); err != nil {
			return fmt.Errorf("layout.regions: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("layout.regions.%s must list at least one identifier", name)
		}
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if id == "" {
				return fmt.Errorf("layout.regions.%s contains an empty identifier", name)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("layout.regions.%s lists %q twice", name, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.MarkdownStyle != "" && !slices.Contains([]string{"dark", "light", "notty"}, ui.MarkdownStyle) {
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\" or \"notty\", got %q", ui.MarkdownStyle)
	}
	if ui.Width < 0 {
		return fmt.Errorf("ui.width must not be negative, got %d", ui.Width)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate runs every section validator.
func (c Config) Validate() error {
	if err := ValidateStorage(c.Storage); err != nil {
		return err
	}
	if err := ValidateLayout(c.Layout); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Region resolves a layout region with any configured override applied.
func (c Config) Region(name string) (layout.Region, error) {
	return layout.LookupRegion(name, c.Layout.Regions)
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# weekly configuration

# Where reports, settings and layout orders are stored
storage:
  # "sqlite" (default) keeps everything in one file; "memory" forgets on exit
  backend: sqlite
  # path: ~/.config/weekly/weekly.db
  # How long reads are served from the in-process cache (storage-cache flag)
  cache_ttl: 5m

# Admin commands (team add/rename/delete, settings) ask for this password.
# It is compared as plain text.
admin:
  password: admin123

# Orderable regions. Override the identifiers of a region to add or remove
# items; stored orders are repaired against this list on every read.
layout:
  # regions:
  #   header: [logo, title, darkmode]
  #   home: [admin, team, reports]
  persist_reconciled: false

ui:
  markdown_style: dark   # "dark", "light" or "notty"
  width: 100

# Tracing of storage operations
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/weekly/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags
flags:
  storage-cache: true
  reorder-mouse: true
`
}
