package cmd

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/report"
)

func validDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("--date must be YYYY-MM-DD, got %q", date)
	}
	return nil
}

func newAchievementCmd(c *cli) *cobra.Command {
	var tf teamFlags
	achievementCmd := &cobra.Command{
		Use:     "achievement",
		Aliases: []string{"ach"},
		Short:   "Manage a team's achievements",
	}
	tf.register(achievementCmd)

	var date string
	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Record an achievement",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if err := validDate(date); err != nil {
				return err
			}
			a, err := repo.AddAchievement(cmd.Context(), tf.team, args[0], date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&date, "date", "", "date achieved, YYYY-MM-DD (default today)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			items, err := repo.Achievements(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			for _, a := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.ID, a.Date, a.Text)
			}
			return nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an achievement",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			if err := repo.DeleteAchievement(cmd.Context(), tf.team, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	var newText, newDate string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an achievement's text or date",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if !cmd.Flags().Changed("text") && !cmd.Flags().Changed("date") {
				return errors.New("nothing to change: pass --text and/or --date")
			}
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			if newDate != "" {
				if err := validDate(newDate); err != nil {
					return err
				}
			}
			items, err := repo.Achievements(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			i := slices.IndexFunc(items, func(a report.Achievement) bool { return a.ID == args[0] })
			if i < 0 {
				return fmt.Errorf("achievement %q: %w", args[0], report.ErrEntryNotFound)
			}
			text := items[i].Text
			if cmd.Flags().Changed("text") {
				text = newText
			}
			a, err := repo.UpdateAchievement(cmd.Context(), tf.team, args[0], text, newDate)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.ID, a.Date, a.Text)
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&newText, "text", "", "new text")
	updateCmd.Flags().StringVar(&newDate, "date", "", "new date, YYYY-MM-DD")

	achievementCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return achievementCmd
}

func newChallengeCmd(c *cli) *cobra.Command {
	var tf teamFlags
	challengeCmd := &cobra.Command{
		Use:   "challenge",
		Short: "Manage a team's challenges",
	}
	tf.register(challengeCmd)

	var support string
	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Record a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			ch, err := repo.AddChallenge(cmd.Context(), tf.team, args[0], support)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ch.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&support, "support", "", "support the team needs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List challenges",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			items, err := repo.Challenges(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			for _, ch := range items {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), challengeLine(ch))
			}
			return nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			if err := repo.DeleteChallenge(cmd.Context(), tf.team, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	var newText, newSupport string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a challenge's text or the support it needs",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if !cmd.Flags().Changed("text") && !cmd.Flags().Changed("support") {
				return errors.New("nothing to change: pass --text and/or --support")
			}
			repo := rt.Reports()
			if err := c.requireTeamAccess(cmd.Context(), repo, tf.team, tf.passcode); err != nil {
				return err
			}
			items, err := repo.Challenges(cmd.Context(), tf.team)
			if err != nil {
				return err
			}
			i := slices.IndexFunc(items, func(ch report.Challenge) bool { return ch.ID == args[0] })
			if i < 0 {
				return fmt.Errorf("challenge %q: %w", args[0], report.ErrEntryNotFound)
			}
			text, support := items[i].Text, items[i].SupportNeeded
			if cmd.Flags().Changed("text") {
				text = newText
			}
			if cmd.Flags().Changed("support") {
				support = newSupport
			}
			ch, err := repo.UpdateChallenge(cmd.Context(), tf.team, args[0], text, support)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), challengeLine(ch))
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&newText, "text", "", "new text")
	updateCmd.Flags().StringVar(&newSupport, "support", "", `support the team needs ("" clears it)`)

	challengeCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return challengeCmd
}

func challengeLine(ch report.Challenge) string {
	line := ch.ID + "\t" + ch.Text
	if ch.SupportNeeded != "" {
		line += "\tsupport: " + ch.SupportNeeded
	}
	return line
}
