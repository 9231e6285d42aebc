package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
// ANSI sequences in s do not count towards the width.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight fills s with spaces up to width cells.
func PadRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
