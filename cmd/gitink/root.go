package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the gitink command tree. Persistent flags override the
// values already layered from the config file and environment.
func newRootCmd(app *App) *cobra.Command {
	var quiet bool
	var configFile string

	root := &cobra.Command{
		Use:   "gitink",
		Short: "Draw letter glyphs onto a contribution calendar with dated commits",
		Long: `gitink issues git commits whose dates are chosen so that a contribution
calendar rendering of the repository spells out letter glyphs, using
dark/light cell intensity as pixels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				app.Config.Verbose = false
			}
		},
	}

	pf := root.PersistentFlags()
	cfg := app.Config
	pf.StringVar(&configFile, "config", "", "Path to TOML config file (default: gitink.toml if present)")
	pf.StringVar(&cfg.RepoPath, "repo", cfg.RepoPath, "Path to repository (default: current directory)")
	pf.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "Path to the commit journal file")
	pf.StringVar(&cfg.CommitPrefix, "prefix", cfg.CommitPrefix, "Commit message prefix")
	pf.StringVar(&cfg.EpochDate, "epoch", cfg.EpochDate, "Pattern anchor date (YYYY-MM-DD)")
	pf.StringVar(&cfg.Remote, "remote", cfg.Remote, "Remote to push to")
	pf.BoolVar(&cfg.AutoPush, "push", cfg.AutoPush, "Push to the remote after a successful run")
	pf.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Retry budget per git operation on index.lock contention")
	pf.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "Delay between lock-retry attempts")
	pf.DurationVar(&cfg.CommitDelay, "commit-delay", cfg.CommitDelay, "Pacing delay between commits on the same day")
	pf.DurationVar(&cfg.DayDelay, "day-delay", cfg.DayDelay, "Pacing delay between days")
	pf.BoolVar(&cfg.NonInteractive, "non-interactive", cfg.NonInteractive, "Fail instead of prompting for missing arguments")
	pf.BoolVar(&quiet, "quiet", false, "Hide informational messages")
	pf.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	pf.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Path to debug log file")

	root.AddCommand(
		newDrawCmd(app),
		newTodayCmd(app),
		newPreviewCmd(app),
		newPushCmd(app),
		newVersionCmd(app),
	)

	return root
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowVersion()
		},
	}
}

func newPushCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push local history to the configured remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Push(cmd.Context())
		},
	}
}
