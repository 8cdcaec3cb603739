package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/weektracker/internal/clock"
	"github.com/Tiliavir/weektracker/internal/config"
	"github.com/Tiliavir/weektracker/internal/logging"
	"github.com/Tiliavir/weektracker/internal/storage"
	"github.com/Tiliavir/weektracker/internal/tracker"
)

var (
	weekDiff   int
	weekFile   string
	configPath string
	verbose    bool

	// defaultConfigPath is set when --config was not given.
	defaultConfigPath bool

	logger *zap.Logger
	dirs   storage.Dirs
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker – keep a plain-text ledger of your working week",
	Long: `tracker records working shifts in one human-editable text file per ISO week
and reports the time worked today, this week and the running balance against
the contracted work-week.

Week-files live in ~/.local/share/tracker/week-files/ and may be edited by
hand at any time (see "tracker edit").

Run without a subcommand to print the report for the current week.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		dirs, err = storage.DefaultDirs()
		if err != nil {
			return err
		}
		if configPath == "" {
			configPath = dirs.ConfigFile()
			defaultConfigPath = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runReport,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitStatus
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&weekDiff, "week", "w", 0, "Week relative to the current one (e.g. -1 for last week)")
	rootCmd.PersistentFlags().StringVarP(&weekFile, "weekfile", "f", "", "Use this week-file instead of the default location")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <config dir>/tracker/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.MarkFlagsMutuallyExclusive("week", "weekfile")

	addReportFlags(rootCmd)

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(outlookCmd)
}

// loadConfig reads the effective configuration. The first command that
// reads the default config file writes the annotated template.
func loadConfig() (config.Config, error) {
	if defaultConfigPath {
		created, err := config.WriteDefault(configPath)
		if err != nil {
			logger.Warn("could not write default config", zap.Error(err))
		} else if created {
			logger.Info("wrote default config", zap.String("path", configPath))
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	logger.Debug("loaded config", zap.String("path", configPath),
		zap.Int("days", cfg.WorkWeek.Days), zap.Int("hours", cfg.WorkWeek.Hours))
	return cfg, nil
}

// newService builds the tracker service for the selected week.
func newService() (*tracker.Service, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	svc := &tracker.Service{
		Dirs:            dirs,
		Clock:           clock.System{},
		WorkWeek:        cfg.ModelWorkWeek(),
		TransferBalance: cfg.WorkWeek.TransferBalance,
		WeekDiff:        weekDiff,
		WeekFile:        weekFile,
		Log:             logger,
	}
	logger.Debug("selected week", zap.Stringer("week", svc.ActiveWeek()), zap.String("path", svc.Path()))
	return svc, cfg, nil
}
