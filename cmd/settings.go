package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/colorcodec"
	"github.com/zjrosen/weekly/internal/log"
	"github.com/zjrosen/weekly/internal/presentation"
	"github.com/zjrosen/weekly/internal/settings"
	"github.com/zjrosen/weekly/internal/ui/colorpicker"
	"github.com/zjrosen/weekly/internal/ui/styles"
)

func newSettingsCmd(c *cli) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Header texts and brand colours",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			s := rt.Settings().Load(cmd.Context())
			if format == presentation.FormatJSON || format == presentation.FormatYAML {
				return presentation.NewFormatter(cmd.OutOrStdout(), format).Encode(s)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%-12s%s\n", "title:", s.HeaderTitle)
			_, _ = fmt.Fprintf(out, "%-12s%s\n", "subtitle:", s.HeaderSubtitle)
			for _, token := range settings.Tokens() {
				hex, _ := s.ColorHex(token)
				_, _ = fmt.Fprintf(out, "%-12s%-14s%s\n", token+":", s.Colors[token], hex)
			}
			return nil
		}),
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")

	var title, subtitle string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the header title or subtitle",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("subtitle") {
				return errors.New("nothing to change: pass --title and/or --subtitle")
			}
			repo := rt.Settings()
			s := repo.Load(cmd.Context())
			if cmd.Flags().Changed("title") {
				s.HeaderTitle = title
			}
			if cmd.Flags().Changed("subtitle") {
				s.HeaderSubtitle = subtitle
			}
			if err := repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		}),
	}
	setCmd.Flags().StringVar(&title, "title", "", "header title")
	setCmd.Flags().StringVar(&subtitle, "subtitle", "", "header subtitle")

	colorCmd := &cobra.Command{
		Use:   "color <token> <#rrggbb | hsl>",
		Short: "Set a brand colour",
		Long: `Set a brand colour. Tokens: primary, accent, background, foreground.
The value may be hex ("#27a599") or HSL ("174 62% 40%"); it is stored as HSL.`,
		Args: cobra.ExactArgs(2),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			token, value := args[0], args[1]

			repo := rt.Settings()
			s := repo.Load(cmd.Context())
			switch {
			case colorcodec.ValidHex(value):
				if err := s.SetColorHex(token, value); err != nil {
					return err
				}
			default:
				if _, ok := colorcodec.ParseHSL(value); !ok {
					return fmt.Errorf("%q is neither #rrggbb nor an HSL triple", value)
				}
				if err := s.SetColorHSL(token, value); err != nil {
					return err
				}
			}
			if err := repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			hsl := s.Colors[token]
			printColor(cmd.OutOrStdout(), token+" = "+hsl, colorcodec.HSLToHex(hsl))
			return nil
		}),
	}

	pickCmd := &cobra.Command{
		Use:   "pick <token>",
		Short: "Choose a brand colour interactively",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			token := args[0]
			repo := rt.Settings()
			s := repo.Load(cmd.Context())
			current, err := s.ColorHex(token)
			if err != nil {
				return err
			}
			if err := styles.ApplyBrand(s.Colors); err != nil {
				log.ErrorErr(log.CatUI, "Applying brand colours failed", err)
			}

			final, err := tea.NewProgram(colorpicker.NewApp(token, current), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("running colour picker: %w", err)
			}
			app, ok := final.(colorpicker.App)
			if !ok {
				return nil
			}
			picked, ok := app.Result()
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
				return nil
			}
			if err := s.SetColorHex(token, picked.Hex); err != nil {
				return err
			}
			if err := repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			printColor(cmd.OutOrStdout(), token+" = "+picked.HSL, picked.Hex)
			return nil
		}),
	}

	settingsCmd.AddCommand(showCmd, setCmd, colorCmd, pickCmd)
	return settingsCmd
}
