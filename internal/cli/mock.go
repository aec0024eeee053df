package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/mockevents"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var mockBaseURL string

//nolint:gochecknoglobals // Cobra boilerplate
var mockPayloadDir string

//nolint:gochecknoglobals // Cobra boilerplate
var mockEngineers int

//nolint:gochecknoglobals // Cobra boilerplate
var mockDays int

//nolint:gochecknoglobals // Cobra boilerplate
var mockTopN int

//nolint:gochecknoglobals // Cobra boilerplate
var mockTimeout time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Generate synthetic collector payloads for local development",
	Long: `Write synthetic users, incidents, GitHub, and Slack payloads into
the payload directory. With --url set, also trigger an analysis run
against a live service, wait for scores, and verify the leaderboard.

Examples:
  burnoutd mock --engineers 50 --days 30
  burnoutd mock --url http://localhost:9080 --engineers 50`,
	RunE: runMock,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(mockCmd)
	mockCmd.Flags().StringVar(&mockBaseURL, "url", "", "Base URL of a running service (empty generates payloads only)")
	mockCmd.Flags().StringVar(&mockPayloadDir, "payload-dir", ".cache", "Directory payloads are written to")
	mockCmd.Flags().IntVar(&mockEngineers, "engineers", 25, "Number of synthetic engineers")
	mockCmd.Flags().IntVar(&mockDays, "days", 30, "Analysis period in days")
	mockCmd.Flags().IntVar(&mockTopN, "top", 10, "Leaderboard entries to fetch during verification")
	mockCmd.Flags().DurationVar(&mockTimeout, "timeout", 30*time.Second, "HTTP request timeout")
}

func runMock(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	if verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mockevents.Run(ctx, &mockevents.Config{
		BaseURL:    mockBaseURL,
		PayloadDir: mockPayloadDir,
		Engineers:  mockEngineers,
		Days:       mockDays,
		TopN:       mockTopN,
		Timeout:    mockTimeout,
		Verbose:    verbose,
	})
}
