package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/presentation"
	"github.com/zjrosen/weekly/internal/report"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		teamID   string
		passcode string
		raw      bool
		format   string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the manager report",
		Long: `Print every team's tasks, achievements and challenges. Each team lists its
first three tasks; the rest are counted.

The full report needs --admin-password. A single team's report (--team) can be
opened with that team's passcode instead.

Examples:
  weekly report --admin-password admin123
  weekly report --team 3f2a... --passcode 1234 --raw
  weekly report --admin-password admin123 --format json | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			repo := rt.Reports()
			if teamID == "" || teamID == report.AllTeams {
				if err := c.requireAdmin(); err != nil {
					return err
				}
			} else if err := c.requireTeamAccess(cmd.Context(), repo, teamID, passcode); err != nil {
				return err
			}

			summaries, err := repo.Summaries(cmd.Context(), teamID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case presentation.FormatJSON, presentation.FormatYAML:
				return presentation.NewFormatter(out, format).Encode(presentation.FromSummaries(summaries))
			case presentation.FormatMarkdown, "":
			default:
				return fmt.Errorf("unsupported output format %q", format)
			}

			opts := presentation.DefaultReportOptions()
			opts.Raw = raw
			if rt.cfg.UI.MarkdownStyle != "" {
				opts.Style = rt.cfg.UI.MarkdownStyle
			}
			if rt.cfg.UI.Width > 0 {
				opts.Width = rt.cfg.UI.Width
			}
			rendered, err := presentation.RenderReport(summaries, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(out, rendered)
			return nil
		}),
	}

	f := reportCmd.Flags()
	f.StringVarP(&teamID, "team", "t", "", "only this team")
	f.StringVarP(&passcode, "passcode", "p", "", "team passcode for --team")
	f.BoolVar(&raw, "raw", false, "print Markdown without terminal rendering")
	f.StringVarP(&format, "format", "f", presentation.FormatMarkdown, "output format: markdown, json or yaml")
	return reportCmd
}
