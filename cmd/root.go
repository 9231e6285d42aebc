// Package cmd holds the weekly command line: report data, brand settings and
// layout orders over a shared key-value store.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/weekly/internal/config"
	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/log"
	"github.com/zjrosen/weekly/internal/paths"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not race with the input loop.
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// cli is the state shared by every subcommand of one root command.
type cli struct {
	v          *viper.Viper
	cfg        config.Config
	cfgFile    string
	configPath string
	debug      bool
	logLevel   string
	adminPW    string

	storage    kv.Storage // injected backend, tests only
	logCleanup func()
}

// RootOption configures NewRootCmd.
type RootOption func(*cli)

// WithStorage replaces the configured backend with s.
func WithStorage(s kv.Storage) RootOption {
	return func(c *cli) { c.storage = s }
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...RootOption) *cobra.Command {
	c := &cli{v: viper.New()}
	for _, opt := range opts {
		opt(c)
	}

	root := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly team reports from the terminal",
		Long: `weekly keeps teams, their weekly tasks, achievements and challenges, the
report's brand colours and the order of the app's header and home cards.

Data lives in a sqlite file by default (see "weekly init").`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logCleanup != nil {
				c.logCleanup()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default: .weekly/config.yaml, then ~/.config/weekly/config.yaml)")
	pf.BoolVar(&c.debug, "debug", false, "write a debug log to weekly-debug.log")
	pf.StringVar(&c.logLevel, "log-level", "debug", "minimum level written to the debug log: debug, info, warn or error")
	pf.StringVar(&c.adminPW, "admin-password", "", "admin password for commands that change teams or settings")
	pf.String("backend", "", `storage backend: "sqlite" or "memory"`)
	pf.String("db", "", "sqlite database path")
	_ = c.v.BindPFlag("storage.backend", pf.Lookup("backend"))
	_ = c.v.BindPFlag("storage.path", pf.Lookup("db"))

	root.AddCommand(
		newColorCmd(),
		newLayoutCmd(c),
		newSettingsCmd(c),
		newTeamCmd(c),
		newTaskCmd(c),
		newAchievementCmd(c),
		newChallengeCmd(c),
		newReportCmd(c),
		newInitCmd(c),
	)
	return root
}

func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	// .env values become WEEKLY_* overrides; a missing file is fine.
	_ = godotenv.Load()

	if c.debug || os.Getenv("WEEKLY_DEBUG") != "" {
		cleanup, err := log.Init("weekly-debug.log")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		c.logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(c.logLevel))
	}

	defaults := config.Defaults()
	c.v.SetDefault("storage.backend", defaults.Storage.Backend)
	c.v.SetDefault("storage.path", defaults.Storage.Path)
	c.v.SetDefault("storage.cache_ttl", defaults.Storage.CacheTTL)
	c.v.SetDefault("admin.password", defaults.Admin.Password)
	c.v.SetDefault("layout.persist_reconciled", defaults.Layout.PersistReconciled)
	c.v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	c.v.SetDefault("ui.width", defaults.UI.Width)
	c.v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	c.v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	c.v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	c.v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	c.v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	c.v.SetEnvPrefix("WEEKLY")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	c.configPath = paths.ResolveConfigPath(c.cfgFile)
	if cmd.Name() != "init" {
		if written, err := config.WriteDefault(c.configPath); err != nil {
			log.ErrorErr(log.CatConfig, "Writing default config failed", err, "path", c.configPath)
		} else if written {
			log.Info(log.CatConfig, "Created default config", "path", c.configPath)
		}
	}

	c.v.SetConfigFile(c.configPath)
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", c.configPath, err)
		}
	}

	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	c.cfg.Storage.Path = paths.Expand(c.cfg.Storage.Path)
	c.cfg.Tracing.FilePath = paths.Expand(c.cfg.Tracing.FilePath)

	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug(log.CatConfig, "Config loaded", "path", c.configPath, "backend", c.cfg.Storage.Backend)
	return nil
}

// requireAdmin checks --admin-password against the configured password.
func (c *cli) requireAdmin() error {
	if c.adminPW == "" {
		return errors.New("this command requires --admin-password")
	}
	if c.adminPW != c.cfg.Admin.Password {
		return errors.New("incorrect admin password")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}
