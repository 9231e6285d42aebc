package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/weekly/internal/report"
)

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// ReportOptions controls RenderReport.
type ReportOptions struct {
	Width        int    // word wrap width for the rendered output
	Style        string // glamour style: "dark", "light" or "notty"
	Raw          bool   // return Markdown without rendering
	PreviewTasks int    // tasks listed per team before "+N more"
	CellWidth    int    // maximum task text width in a table cell
}

// DefaultReportOptions mirror the manager report page: three tasks per team.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Width:        100,
		Style:        "dark",
		PreviewTasks: 3,
		CellWidth:    40,
	}
}

// RenderReport builds the manager report and, unless opts.Raw, renders it
// for the terminal.
func RenderReport(summaries []report.Summary, opts ReportOptions) (string, error) {
	md := BuildMarkdown(summaries, opts)
	if opts.Raw {
		return md, nil
	}

	style := opts.Style
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(md)
}

// BuildMarkdown writes the report as Markdown.
func BuildMarkdown(summaries []report.Summary, opts ReportOptions) string {
	if opts.PreviewTasks <= 0 {
		opts.PreviewTasks = 3
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 40
	}

	var b strings.Builder
	b.WriteString("# Team reports\n\n")
	fmt.Fprintf(&b, "%d team(s)\n\n", len(summaries))

	if len(summaries) == 0 {
		b.WriteString("_No teams registered._\n")
		return b.String()
	}

	for _, s := range summaries {
		writeTeam(&b, s, opts)
	}
	return b.String()
}

func writeTeam(b *strings.Builder, s report.Summary, opts ReportOptions) {
	fmt.Fprintf(b, "## %s\n\n", escapeCell(s.Team.Name))
	fmt.Fprintf(b, "_Last updated: %s_\n\n", s.Team.UpdatedAt.Local().Format("2006-01-02 15:04"))

	b.WriteString("| Active tasks | Achievements | Challenges | Avg. completion |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(b, "| %d | %d | %d | %.0f%% |\n\n",
		len(s.Tasks), len(s.Achievements), len(s.Challenges), s.AverageCompletion)

	if len(s.Tasks) == 0 {
		return
	}

	shown := s.Tasks[:min(len(s.Tasks), opts.PreviewTasks)]
	textWidth := 0
	for _, t := range shown {
		textWidth = max(textWidth, runewidth.StringWidth(cell(t.Text, opts.CellWidth)))
	}
	textWidth = max(textWidth, runewidth.StringWidth("Task"))

	b.WriteString("### Current tasks\n\n")
	fmt.Fprintf(b, "| %s | Status | Completion |\n", runewidth.FillRight("Task", textWidth))
	fmt.Fprintf(b, "|%s|---|---|\n", strings.Repeat("-", textWidth+2))
	for _, t := range shown {
		fmt.Fprintf(b, "| %s | %s | %d%% |\n",
			runewidth.FillRight(cell(t.Text, opts.CellWidth), textWidth), t.Status, t.CompletionRate)
	}
	if more := len(s.Tasks) - len(shown); more > 0 {
		fmt.Fprintf(b, "\n_+ %d more tasks_\n", more)
	}
	b.WriteString("\n")
}

// cell truncates text to width columns and escapes it for a table.
func cell(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	return escapeCell(truncate.StringWithTail(text, uint(width), "…")) //nolint:gosec // width is positive
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
