package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSection draws content inside a rounded border with the title set
// into the top edge: ╭─ Title (hint) ───╮. The border uses AccentColor when
// focused.
func RenderSection(content []string, title, hint string, width int, focused bool) string {
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = AccentColor
	}
	border := lipgloss.NewStyle().Foreground(color)
	inner := max(width-2, 1)

	label := ""
	if title != "" {
		label = "─ " + lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
		if hint != "" {
			label += " " + MutedStyle.Render("("+hint+")")
		}
		label += " "
	}
	fill := max(inner-lipgloss.Width(label), 0)

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, border.Render("╭")+label+border.Render(strings.Repeat("─", fill)+"╮"))
	for _, row := range content {
		lines = append(lines, border.Render("│")+PadRight(Truncate(row, inner), inner)+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(lines, "\n")
}
