package styles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/weekly/internal/colorcodec"
	"github.com/zjrosen/weekly/internal/settings"
)

// ApplyBrand converts the HSL brand colours from settings to hex and
// rebuilds every style. Unknown tokens and unparseable HSL values are
// rejected before anything changes.
func ApplyBrand(colors map[string]string) error {
	resolved := make(map[string]lipgloss.Color, len(colors))
	for token, hsl := range colors {
		if !slices.Contains(settings.Tokens(), token) {
			return fmt.Errorf("%w: %q", settings.ErrUnknownToken, token)
		}
		if _, ok := colorcodec.ParseHSL(hsl); !ok {
			return fmt.Errorf("invalid HSL colour for %s: %q", token, hsl)
		}
		resolved[token] = lipgloss.Color(colorcodec.HSLToHex(hsl))
	}

	for token, c := range resolved {
		switch token {
		case settings.TokenPrimary:
			PrimaryColor = c
		case settings.TokenAccent:
			AccentColor = c
		case settings.TokenBackground:
			BackgroundColor = c
		case settings.TokenForeground:
			ForegroundColor = c
		}
	}

	rebuildStyles()
	return nil
}

// Swatch renders width cells filled with hex.
func Swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", max(width, 0)))
}
