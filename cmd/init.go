package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/config"
)

func newInitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the config file, or update its storage section",
		Long: `Create the config file from the commented default template if it does not
exist. With --backend or --db, update the storage section in place; comments
elsewhere in the file are kept.

Examples:
  weekly init
  weekly init --backend sqlite --db ~/reports/weekly.db
  weekly --config ./weekly.yaml init --backend memory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			written, err := config.WriteDefault(c.configPath)
			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			if written {
				_, _ = fmt.Fprintf(out, "created %s\n", c.configPath)
			}

			flags := cmd.Flags()
			if !flags.Changed("backend") && !flags.Changed("db") {
				if !written {
					_, _ = fmt.Fprintf(out, "%s already exists\n", c.configPath)
				}
				return nil
			}

			storage := c.cfg.Storage
			if storage.Backend == config.BackendMemory {
				storage.Path = ""
			}
			if err := config.SaveStorage(c.configPath, storage); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			_, _ = fmt.Fprintf(out, "storage: backend=%s", storage.Backend)
			if storage.Path != "" {
				_, _ = fmt.Fprintf(out, " path=%s", storage.Path)
			}
			_, _ = fmt.Fprintf(out, " (%s)\n", c.configPath)
			return nil
		},
	}
}
