package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/colorcodec"
)

func newColorCmd() *cobra.Command {
	colorCmd := &cobra.Command{
		Use:   "color",
		Short: "Convert colours between HSL and hex",
	}

	colorCmd.AddCommand(&cobra.Command{
		Use:   "hex <hsl>",
		Short: "Convert an HSL triple to #rrggbb",
		Long: `Convert an HSL triple such as "204 66% 21%" to hex. The first three numbers
are read as hue, saturation and lightness; anything unparseable becomes #000000.

Examples:
  weekly color hex "204 66% 21%"
  weekly color hex 174 62 40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex := colorcodec.HSLToHex(strings.Join(args, " "))
			printColor(cmd.OutOrStdout(), hex, hex)
			return nil
		},
	})

	colorCmd.AddCommand(&cobra.Command{
		Use:   "hsl <#rrggbb>",
		Short: "Convert a hex colour to an HSL triple",
		Long: `Convert a hex colour to "H S% L%". The leading # is optional. Malformed
input prints the fallback "0 0% 0%".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hsl := colorcodec.HexToHSL(args[0])
			printColor(cmd.OutOrStdout(), hsl, colorcodec.HSLToHex(hsl))
			return nil
		},
	})

	return colorCmd
}

// printColor writes text, followed by a swatch of hex when w is a colour
// terminal.
func printColor(w io.Writer, text, hex string) {
	r := lipgloss.NewRenderer(w)
	if r.ColorProfile() == termenv.Ascii {
		_, _ = fmt.Fprintln(w, text)
		return
	}
	swatch := r.NewStyle().Background(lipgloss.Color(hex)).Render("      ")
	_, _ = fmt.Fprintf(w, "%s  %s\n", swatch, text)
}
