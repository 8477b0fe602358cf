package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"eventregistration/config"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Event registration API server",
	Long: `Event registration API: create events with a capacity and a time window,
register attendees by email, list upcoming events in any timezone and page
through attendees.

Configuration is read from the environment (and a .env file outside production).`,
	SilenceUsage: true,
	// serve is the default when no subcommand is given
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig loads configuration and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	bootstrap := config.NewLogger(os.Stderr, os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL"))
	cfg, err := config.Load(bootstrap)
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
