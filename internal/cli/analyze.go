package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/sources"
	service "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/app"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/report"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Drain polling for one-shot runs.
const (
	drainPollInterval = 100 * time.Millisecond
	drainTimeout      = 2 * time.Minute
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeDays int

//nolint:gochecknoglobals // Cobra boilerplate
var analyzePayloadDir string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeGitHub bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeSlack bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeDryRun bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot burnout analysis and write JSON reports",
	Long: `Score every engineer found in the cached collector payloads and
write a summary report plus one detail file per engineer to the
output directory.

Example:
  burnoutd analyze --days 30 --payload-dir .cache --output output`,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "Analysis period in days (default from config)")
	analyzeCmd.Flags().StringVar(&analyzePayloadDir, "payload-dir", "", "Directory holding collector payloads (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output", "", "Directory reports are written to (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeGitHub, "include-github", false, "Include the GitHub activity source")
	analyzeCmd.Flags().BoolVar(&analyzeSlack, "include-slack", false, "Include the Slack activity source")
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "Parse and validate payloads without scoring or writing reports")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	// Flags override the loaded configuration only when set.
	if cmd.Flags().Changed("payload-dir") {
		cfg.PayloadDir = analyzePayloadDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = analyzeOutputDir
	}
	if cmd.Flags().Changed("include-github") {
		cfg.IncludeGitHub = analyzeGitHub
	}
	if cmd.Flags().Changed("include-slack") {
		cfg.IncludeSlack = analyzeSlack
	}

	days := cfg.LookbackDays
	if cmd.Flags().Changed("days") {
		days = analyzeDays
	}

	if analyzeDryRun {
		return dryRun(ctx, cfg, days)
	}

	opts, err := service.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	svc := service.New(append(opts, service.WithLogger(log))...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var overrides types.RunOverrides
	if cmd.Flags().Changed("days") {
		overrides.Days = analyzeDays
	}

	summary, err := svc.StartRun(ctx, overrides)
	if err != nil {
		return err
	}
	log.Info(ctx, "analysis run started",
		logger.String("runID", summary.RunID),
		logger.Int("windows", summary.Windows))

	if err := waitForDrain(ctx, svc, summary.Windows); err != nil {
		return err
	}

	results, err := svc.Results(ctx)
	if err != nil {
		return err
	}

	path, err := report.NewWriter(cfg.OutputDir).Write(ctx, summary, results)
	if err != nil {
		return err
	}
	log.Info(ctx, "reports written",
		logger.String("summary", path),
		logger.Int("engineers", len(results)))
	return nil
}

// dryRun loads and validates the cached payloads without scoring
// anything, so a collector refresh can be sanity-checked cheaply.
func dryRun(ctx context.Context, cfg *config.Config, days int) error {
	log := logger.Get()

	periodEnd := time.Now().UTC()
	periodStart := periodEnd.AddDate(0, 0, -days)

	loader := sources.NewLoader(
		sources.WithGitHub(cfg.IncludeGitHub),
		sources.WithSlack(cfg.IncludeSlack),
	)
	windows, err := loader.Load(ctx, cfg.PayloadDir, periodStart, periodEnd)
	if err != nil {
		return err
	}

	events := 0
	for _, win := range windows {
		if err := win.Validate(); err != nil {
			return fmt.Errorf("window for %s: %w", win.EngineerID, err)
		}
		events += len(win.Events)
	}
	log.Info(ctx, "dry run ok",
		logger.Int("engineers", len(windows)),
		logger.Int("events", events),
		logger.Int("days", days))
	return nil
}

// waitForDrain blocks until every enqueued window has been scored.
func waitForDrain(ctx context.Context, svc *service.Service, expected int) error {
	deadline := time.Now().Add(drainTimeout)
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %d windows to be scored", expected)
		}
		if svc.Pending(ctx) > 0 {
			continue
		}
		results, err := svc.Results(ctx)
		if err != nil {
			return err
		}
		if len(results) >= expected {
			return nil
		}
	}
}
