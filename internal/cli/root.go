// Package cli wires the burnoutd commands: a long-running HTTP
// service, a one-shot analysis that writes JSON reports, and a mock
// data generator for local development.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "burnoutd",
	Short: "Multi-source engineer burnout detector",
	Long: `burnoutd scores engineer burnout risk along the Maslach dimensions
from incident, GitHub, and Slack activity.

Run "burnoutd serve" for the HTTP service with a live leaderboard, or
"burnoutd analyze" for a one-shot run that writes JSON reports.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is layered from BURNOUT_CONFIG and BURNOUT_* env vars)")
}

// loadConfig honors the --config flag when set and otherwise layers
// defaults, the BURNOUT_CONFIG file, and BURNOUT_* environment vars.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

// watchPath returns the config file to watch for live reloads, if any.
func watchPath() string {
	if configFile != "" {
		return configFile
	}
	return os.Getenv("BURNOUT_CONFIG")
}
