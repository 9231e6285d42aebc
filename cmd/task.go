package cmd

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/presentation"
	"github.com/zjrosen/weekly/internal/report"
)

// teamFlags are shared by the per-team entry commands.
type teamFlags struct {
	team     string
	passcode string
}

func (f *teamFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.team, "team", "t", "", "team ID")
	cmd.PersistentFlags().StringVarP(&f.passcode, "passcode", "p", "", "team passcode")
}

type taskFields struct {
	text         string
	status       string
	completion   int
	weekly       int
	latestUpdate string
}

func (f *taskFields) register(cmd *cobra.Command, withText bool) {
	if withText {
		cmd.Flags().StringVar(&f.text, "text", "", "task description")
	}
	cmd.Flags().StringVar(&f.status, "status", "", "development, study, review, pending or study+development")
	cmd.Flags().IntVar(&f.completion, "completion", 0, "completion rate, 0-100")
	cmd.Flags().IntVar(&f.weekly, "weekly", 0, "progress this week, 0-100")
	cmd.Flags().StringVar(&f.latestUpdate, "update", "", "latest update note")
}

// apply copies the flags the user set onto t.
func (f *taskFields) apply(cmd *cobra.Command, t *report.Task) error {
	changed := cmd.Flags().Changed
	if changed("text") {
		t.Text = f.text
	}
	if changed("status") {
		st, err := report.ParseTaskStatus(f.status)
		if err != nil {
			return err
		}
		t.Status = st
	}
	if changed("completion") {
		t.CompletionRate = f.completion
	}
	if changed("weekly") {
		t.WeeklyProgressRate = f.weekly
	}
	if changed("update") {
		t.LatestUpdate = f.latestUpdate
	}
	return nil
}

func newTaskCmd(c *cli) *cobra.Command {
	var tf teamFlags
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a team's weekly tasks",
	}
	tf.register(taskCmd)

	var addFields taskFields
	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			t := report.Task{Text: args[0]}
			if err := addFields.apply(cmd, &t); err != nil {
				return err
			}
			t, err := repo.AddTask(cmd.Context(), tf.team, t)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		}),
	}
	addFields.register(addCmd, false)

	var format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a team's tasks",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			tasks, err := repo.Tasks(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			if format == presentation.FormatJSON || format == presentation.FormatYAML {
				return presentation.NewFormatter(cmd.OutOrStdout(), format).Encode(tasks)
			}
			for _, t := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d%%\t%s\n", t.ID, t.Status, t.CompletionRate, t.Text)
			}
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")

	var updateFields taskFields
	updateCmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change a task",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			tasks, err := repo.Tasks(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			i := slices.IndexFunc(tasks, func(t report.Task) bool { return t.ID == args[0] })
			if i < 0 {
				return fmt.Errorf("task %q: %w", args[0], report.ErrEntryNotFound)
			}
			t := tasks[i]
			if err := updateFields.apply(cmd, &t); err != nil {
				return err
			}
			t.LastUpdateDate = time.Now().Format("2006-01-02")
			t, err = repo.UpdateTask(cmd.Context(), tf.team, t)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d%%\t%s\n", t.ID, t.Status, t.CompletionRate, t.Text)
			return nil
		}),
	}
	updateFields.register(updateCmd, true)

	deleteCmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			if err := repo.DeleteTask(cmd.Context(), tf.team, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	taskCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return taskCmd
}
