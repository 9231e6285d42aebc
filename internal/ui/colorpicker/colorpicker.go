// Package colorpicker provides a visual colour selection component for the
// report's brand colours.
package colorpicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/weekly/internal/colorcodec"
	"github.com/zjrosen/weekly/internal/ui/styles"
)

// PresetColor represents a named color option.
type PresetColor struct {
	Name string
	Hex  string
}

// BrandPresets holds the stock brand colours and close variants.
var BrandPresets = []PresetColor{
	{Name: "Navy", Hex: "#123d59"},
	{Name: "Teal", Hex: "#27a599"},
	{Name: "Ink", Hex: "#0a2333"},
	{Name: "Ocean", Hex: "#1f6f9f"},
	{Name: "Lagoon", Hex: "#3cc4b5"},
	{Name: "Slate", Hex: "#4a6274"},
	{Name: "Sand", Hex: "#e9dcc3"},
	{Name: "Gold", Hex: "#c9a227"},
}

// AccentPresets provides brighter options.
var AccentPresets = []PresetColor{
	{Name: "Red", Hex: "#ff8787"},
	{Name: "Green", Hex: "#73f59f"},
	{Name: "Blue", Hex: "#54a0ff"},
	{Name: "Purple", Hex: "#7d56f4"},
	{Name: "Yellow", Hex: "#feca57"},
	{Name: "Orange", Hex: "#ff9f43"},
	{Name: "Pink", Hex: "#cba6f7"},
	{Name: "Coral", Hex: "#ff6b6b"},
}

// GrayscalePresets provides backgrounds and text colours.
var GrayscalePresets = []PresetColor{
	{Name: "White", Hex: "#ffffff"},
	{Name: "Paper", Hex: "#f5f5f5"},
	{Name: "Gray 1", Hex: "#cccccc"},
	{Name: "Gray 2", Hex: "#999999"},
	{Name: "Gray 3", Hex: "#666666"},
	{Name: "Gray 4", Hex: "#333333"},
	{Name: "Charcoal", Hex: "#1a1a1a"},
	{Name: "Black", Hex: "#000000"},
}

const (
	focusInput = iota
	focusSave
	focusCancel
)

const columnWidth = 14

// Model holds the color picker state.
type Model struct {
	title        string
	columns      [][]PresetColor
	column       int
	selected     int
	customInput  textinput.Model
	inCustomMode bool
	customFocus  int
	showError    bool
	boxWidth     int
}

// SelectMsg is sent when a colour is chosen. Hex is lower-case #rrggbb and
// HSL is its "H S% L%" form.
type SelectMsg struct {
	Hex string
	HSL string
}

// CancelMsg is sent when the picker is cancelled.
type CancelMsg struct{}

// New creates a picker titled after the token being edited.
func New(title string) Model {
	ti := textinput.New()
	ti.Placeholder = "#rrggbb"
	ti.CharLimit = 7
	ti.Width = 10
	ti.Prompt = ""

	return Model{
		title:       title,
		columns:     [][]PresetColor{BrandPresets, AccentPresets, GrayscalePresets},
		customInput: ti,
		boxWidth:    3*columnWidth + 4,
	}
}

// SetSelected moves the cursor to the preset matching hex and leaves
// custom mode. An unknown colour opens custom mode prefilled with it.
func (m Model) SetSelected(hex string) Model {
	m.inCustomMode = false
	m.customFocus = focusInput
	m.showError = false
	m.customInput.Blur()

	for col, presets := range m.columns {
		for row, preset := range presets {
			if strings.EqualFold(preset.Hex, hex) {
				m.column, m.selected = col, row
				return m
			}
		}
	}
	m.column, m.selected = 0, 0
	if colorcodec.ValidHex(hex) {
		m.inCustomMode = true
		m.customInput.SetValue(strings.ToLower(hex))
		m.customInput.Focus()
	}
	return m
}

// Selected returns the preset under the cursor.
func (m Model) Selected() PresetColor {
	if m.column >= 0 && m.column < len(m.columns) {
		presets := m.columns[m.column]
		if m.selected >= 0 && m.selected < len(presets) {
			return presets[m.selected]
		}
	}
	return PresetColor{}
}

// InCustomMode reports whether hex entry is active.
func (m Model) InCustomMode() bool {
	return m.inCustomMode
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.inCustomMode {
		return m.updateCustom(msg)
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	current := m.columns[m.column]
	switch key.String() {
	case "j", "down":
		if m.selected < len(current)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "h", "left":
		if m.column > 0 {
			m.column--
			m.selected = min(m.selected, len(m.columns[m.column])-1)
		}
	case "l", "right":
		if m.column < len(m.columns)-1 {
			m.column++
			m.selected = min(m.selected, len(m.columns[m.column])-1)
		}
	case "enter":
		return m, selectCmd(current[m.selected].Hex)
	case "esc", "q":
		return m, cancelCmd
	case "c":
		m.inCustomMode = true
		m.customFocus = focusInput
		m.customInput.SetValue("")
		m.customInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateCustom(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.inCustomMode = false
			m.showError = false
			m.customInput.Blur()
			return m, nil
		case "enter":
			switch m.customFocus {
			case focusInput:
				m.customFocus = focusSave
				m.customInput.Blur()
			case focusSave:
				hex := m.customInput.Value()
				if colorcodec.ValidHex(hex) {
					return m, selectCmd(hex)
				}
				m.showError = true
			case focusCancel:
				m.inCustomMode = false
				m.customFocus = focusInput
				m.showError = false
			}
			return m, nil
		case "tab", "down":
			return m.focus((m.customFocus + 1) % 3)
		case "shift+tab", "up":
			return m.focus((m.customFocus + 2) % 3)
		case "h", "left", "l", "right":
			if m.customFocus != focusInput {
				if m.customFocus == focusSave {
					m.customFocus = focusCancel
				} else {
					m.customFocus = focusSave
				}
				return m, nil
			}
		}
	}

	if m.customFocus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	if m.showError && colorcodec.ValidHex(m.customInput.Value()) {
		m.showError = false
	}
	return m, cmd
}

func (m Model) focus(f int) (Model, tea.Cmd) {
	m.customFocus = f
	if f == focusInput {
		m.customInput.Focus()
		return m, textinput.Blink
	}
	m.customInput.Blur()
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	width := m.boxWidth
	rule := styles.MutedStyle.Render(strings.Repeat("─", width))
	pad := lipgloss.NewStyle().PaddingLeft(1)

	var b strings.Builder
	if m.inCustomMode {
		b.WriteString(styles.TitleStyle.Render(m.heading("Custom colour")) + "\n" + rule + "\n")

		line := m.customInput.View()
		if hex := m.customInput.Value(); colorcodec.ValidHex(hex) {
			line += "  " + styles.Swatch(hex, 4) + " " + styles.MutedStyle.Render(colorcodec.HexToHSL(hex))
		}
		b.WriteString(pad.Render(styles.RenderSection([]string{line}, "Hex", "#rrggbb", width-2, m.customFocus == focusInput)))
		b.WriteString("\n")
		if m.showError {
			b.WriteString(pad.Render(styles.ErrorStyle.Render("Invalid hex format")) + "\n")
		}

		save, cancel := styles.PrimaryButtonStyle, styles.SecondaryButtonStyle
		switch m.customFocus {
		case focusSave:
			save = styles.PrimaryButtonFocusedStyle
		case focusCancel:
			cancel = styles.PrimaryButtonFocusedStyle
		}
		b.WriteString("\n" + pad.Render(save.Render("Save")+"  "+cancel.Render("Cancel")))
	} else {
		b.WriteString(styles.TitleStyle.Render(m.heading("Select colour")) + "\n" + rule + "\n")

		views := make([]string, 0, len(m.columns))
		for colIdx, presets := range m.columns {
			var col strings.Builder
			for rowIdx, preset := range presets {
				prefix := " "
				if colIdx == m.column && rowIdx == m.selected {
					prefix = styles.SelectionIndicatorStyle.Render(">")
				}
				line := prefix + styles.Swatch(preset.Hex, 2) + " " + preset.Name
				col.WriteString(styles.PadRight(line, columnWidth) + "\n")
			}
			views = append(views, col.String())
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
		b.WriteString(pad.Render(styles.MutedStyle.Render("c custom  h/l column  enter select")))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Width(width).
		Render(b.String())
}

func (m Model) heading(s string) string {
	if m.title == "" {
		return s
	}
	return s + ": " + m.title
}

func selectCmd(hex string) tea.Cmd {
	hex = strings.ToLower(hex)
	return func() tea.Msg {
		return SelectMsg{Hex: hex, HSL: colorcodec.HexToHSL(hex)}
	}
}

func cancelCmd() tea.Msg {
	return CancelMsg{}
}
