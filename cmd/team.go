package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/report"
)

// requireTeamAccess opens teamID with passcode, or with the admin password.
func (c *cli) requireTeamAccess(ctx context.Context, repo *report.Repository, teamID, passcode string) error {
	if teamID == "" {
		return errors.New("--team is required")
	}
	if c.adminPW != "" && repo.VerifyAdminPassword(c.adminPW) {
		return nil
	}
	if _, err := repo.Team(ctx, teamID); err != nil {
		return err
	}
	if !repo.VerifyTeamPasscode(ctx, teamID, passcode) {
		return errors.New("incorrect team passcode")
	}
	return nil
}

func newTeamCmd(c *cli) *cobra.Command {
	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	var teamPasscode string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a team (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			team, err := rt.Reports().CreateTeam(cmd.Context(), args[0], teamPasscode)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), team.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&teamPasscode, "team-passcode", "", "passcode members must give to edit the team's report")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, _ []string) error {
			teams, err := rt.Reports().Teams(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(teams) == 0 {
				_, _ = fmt.Fprintln(out, "no teams")
				return nil
			}
			for _, t := range teams {
				access := "open"
				if t.Passcode != "" {
					access = "locked"
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", t.ID, t.Name, access, t.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}),
	}

	var renamePasscode string
	renameCmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a team and optionally change its passcode (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			repo := rt.Reports()
			team, err := repo.Team(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			passcode := team.Passcode
			if cmd.Flags().Changed("team-passcode") {
				passcode = renamePasscode
			}
			team, err = repo.UpdateTeam(cmd.Context(), team.ID, args[1], passcode)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", team.ID, team.Name)
			return nil
		}),
	}
	renameCmd.Flags().StringVar(&renamePasscode, "team-passcode", "", "new passcode; pass an empty value to open the team")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a team and all of its entries (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			if err := rt.Reports().DeleteTeam(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	var loginPasscode string
	loginCmd := &cobra.Command{
		Use:   "login <id>",
		Short: "Check a team passcode",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			if !rt.Reports().VerifyTeamPasscode(cmd.Context(), args[0], loginPasscode) {
				return errors.New("incorrect team passcode")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}),
	}
	loginCmd.Flags().StringVarP(&loginPasscode, "passcode", "p", "", "team passcode")

	teamCmd.AddCommand(addCmd, listCmd, renameCmd, deleteCmd, loginCmd)
	return teamCmd
}
