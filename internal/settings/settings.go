// Package settings loads and saves the application settings record: header
// texts and the brand colours, which are stored as HSL strings.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/weekly/internal/colorcodec"
	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/log"
)

// StorageKey is where the settings record lives.
const StorageKey = "app_settings"

// MaxTitleLength is measured in grapheme clusters.
const MaxTitleLength = 120

// Colour tokens.
const (
	TokenPrimary    = "primary"
	TokenAccent     = "accent"
	TokenBackground = "background"
	TokenForeground = "foreground"
)

var (
	ErrUnknownToken = errors.New("unknown colour token")
	ErrEmptyTitle   = errors.New("header title is required")
	ErrTitleTooLong = fmt.Errorf("header title exceeds %d characters", MaxTitleLength)
)

// Settings is the persisted record. Field names match the stored JSON.
type Settings struct {
	HeaderTitle    string            `json:"headerTitle" yaml:"header_title"`
	HeaderSubtitle string            `json:"headerSubtitle" yaml:"header_subtitle"`
	Colors         map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Defaults returns a fresh copy of the default settings.
func Defaults() Settings {
	return Settings{
		HeaderTitle:    "التقرير الأسبوعي",
		HeaderSubtitle: "نظام إدارة التقارير الأسبوعية للفرق",
		Colors: map[string]string{
			TokenPrimary:    "204 66% 21%",
			TokenAccent:     "174 62% 40%",
			TokenBackground: "0 0% 100%",
			TokenForeground: "204 66% 12%",
		},
	}
}

// Tokens lists the colour tokens in display order.
func Tokens() []string {
	return []string{TokenPrimary, TokenAccent, TokenBackground, TokenForeground}
}

// Validate checks the header title.
func (s Settings) Validate() error {
	title := strings.TrimSpace(s.HeaderTitle)
	if title == "" {
		return ErrEmptyTitle
	}
	if uniseg.GraphemeClusterCount(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ColorHex returns the hex form of a token's colour.
func (s Settings) ColorHex(token string) (string, error) {
	hsl, ok := s.Colors[token]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	return colorcodec.HSLToHex(hsl), nil
}

// SetColorHex stores hex under token in HSL form, as a native colour input does.
func (s *Settings) SetColorHex(token, hex string) error {
	if !slices.Contains(Tokens(), token) {
		return fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	s.ensureColors()
	s.Colors[token] = colorcodec.HexToHSL(hex)
	return nil
}

// SetColorHSL stores a canonicalised form of hsl under token.
func (s *Settings) SetColorHSL(token, hsl string) error {
	if !slices.Contains(Tokens(), token) {
		return fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	s.ensureColors()
	s.Colors[token] = colorcodec.Normalize(hsl)
	return nil
}

func (s *Settings) ensureColors() {
	if s.Colors == nil {
		s.Colors = make(map[string]string)
	}
}

// Repository reads and writes Settings through a kv.Storage.
type Repository struct {
	storage kv.Storage
}

func NewRepository(storage kv.Storage) *Repository {
	return &Repository{storage: storage}
}

// Load returns the stored settings overlaid on Defaults. Absent, corrupt or
// unreadable data yields Defaults.
func (r *Repository) Load(ctx context.Context) Settings {
	out := Defaults()

	raw, ok, err := r.storage.Get(ctx, StorageKey)
	if err != nil {
		log.ErrorErr(log.CatSettings, "reading settings failed, using defaults", err)
		return out
	}
	if !ok {
		return out
	}

	var stored Settings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn(log.CatSettings, "stored settings are corrupt, using defaults", "error", err)
		return out
	}

	if stored.HeaderTitle != "" {
		out.HeaderTitle = stored.HeaderTitle
	}
	if stored.HeaderSubtitle != "" {
		out.HeaderSubtitle = stored.HeaderSubtitle
	}
	maps.Copy(out.Colors, stored.Colors)

	return out
}

// Save validates s and persists it.
func (r *Repository) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := r.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	log.Info(log.CatSettings, "settings saved", "title", s.HeaderTitle)
	return nil
}
