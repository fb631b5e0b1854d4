package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/config"
	"github.com/pable/go-rugby-metrics/pkg/logger"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	// cfg is loaded before every command runs.
	cfg = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "rugbymetrics",
	Short: "Rugby match event metrics tool",
	Long:  "Import tagged rugby match events, filter them by descriptor and aggregate them into chart datasets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if !cmd.Flags().Changed("db") {
			dbPath = cfg.DBPath
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = cfg.LogLevel
		}
		if err := logger.Init(); err != nil {
			return err
		}
		if err := logger.SetLevelString(logLevel); err != nil {
			return err
		}
		logger.Named("config").Debug("configuration loaded")
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $RUGBYMETRICS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(clipsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}
