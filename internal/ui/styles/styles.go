// Package styles contains Lip Gloss style definitions derived from the
// report's brand colours.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Brand colours. ApplyBrand replaces them with the stored settings.
	PrimaryColor    lipgloss.TerminalColor = lipgloss.Color("#123d59")
	AccentColor     lipgloss.TerminalColor = lipgloss.Color("#27a599")
	BackgroundColor lipgloss.TerminalColor = lipgloss.Color("#ffffff")
	ForegroundColor lipgloss.TerminalColor = lipgloss.Color("#0a2333")

	// Fixed colours
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ButtonTextColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonSecondaryBg  = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}

	TitleStyle              lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
	GrabbedStyle            lipgloss.Style
	MutedStyle              lipgloss.Style
	ErrorStyle              lipgloss.Style

	PrimaryButtonStyle        lipgloss.Style
	PrimaryButtonFocusedStyle lipgloss.Style
	SecondaryButtonStyle      lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).PaddingLeft(1)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	GrabbedStyle = lipgloss.NewStyle().Bold(true).Foreground(ButtonTextColor).Background(PrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	button := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(ButtonTextColor)
	PrimaryButtonStyle = button.Background(PrimaryColor)
	PrimaryButtonFocusedStyle = button.Background(AccentColor).Underline(true).UnderlineSpaces(true)
	SecondaryButtonStyle = button.Background(ButtonSecondaryBg)
}
