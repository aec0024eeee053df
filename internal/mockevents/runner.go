package mockevents

import (
	"context"
	"fmt"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Run generates synthetic collector payloads and, when a base URL is
// configured, drives a full analysis run against a live detector:
// trigger, wait for scores, fetch the leaderboard, verify it.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}
	log := logger.Get().Named("mockevents")

	log.Info(ctx, "starting mock data run",
		logger.String("baseURL", config.BaseURL),
		logger.String("payloadDir", config.PayloadDir),
		logger.Int("engineers", config.Engineers),
		logger.Int("days", config.Days),
		logger.Int("topN", config.TopN),
		logger.Any("verbose", config.Verbose))

	// Step 1: Generate the four collector payload files.
	if err := generatePayloads(ctx, config, stats); err != nil {
		return fmt.Errorf("payload generation failed: %w", err)
	}

	if config.BaseURL == "" {
		log.Info(ctx, "no base URL configured, skipping live run")
		finalize(stats)
		return nil
	}

	// Step 2: Check service health.
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 3: Trigger an analysis run over the generated payloads.
	summary, err := triggerAnalysis(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("analysis trigger failed: %w", err)
	}

	// Step 4: Wait for the workers to publish scores.
	if err := waitForScores(ctx, config, summary.Windows); err != nil {
		return fmt.Errorf("waiting for scores failed: %w", err)
	}

	// Step 5: Fetch the leaderboard.
	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 6: Verify results.
	if err := verifyResults(ctx, config, leaderboard); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	finalize(stats)
	log.Info(ctx, "mock data run completed successfully")
	return nil
}

// checkServiceHealth verifies the detector is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	log := logger.Get().Named("mockevents")
	log.Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	log.Info(ctx, "service is healthy")
	return nil
}

// triggerAnalysis posts an analysis request covering the generated
// period and returns the run acknowledgement.
func triggerAnalysis(ctx context.Context, config *Config, stats *Stats) (runSummary, error) {
	log := logger.Get().Named("mockevents")
	client := newHTTPClient(config.Timeout)

	includeGitHub := true
	includeSlack := true
	req := map[string]interface{}{
		"days":           config.Days,
		"include_github": includeGitHub,
		"include_slack":  includeSlack,
	}

	var summary runSummary
	if err := client.postJSON(ctx, config.BaseURL+"/api/v1/analyze", req, StatusAccepted, &summary); err != nil {
		return runSummary{}, err
	}
	stats.WindowsAnalyzed = summary.Windows

	log.Info(ctx, "analysis run accepted",
		logger.String("runID", summary.RunID),
		logger.Int("windows", summary.Windows))
	return summary, nil
}

// waitForScores polls the stats endpoint until every enqueued window
// has been scored or the polling attempts run out.
func waitForScores(ctx context.Context, config *Config, expected int) error {
	log := logger.Get().Named("mockevents")
	log.Info(ctx, "waiting for scores to publish", logger.Int("expected", expected))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/v1/stats"

	for attempt := 0; attempt < ScorePollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ScorePollInterval):
		}

		var s statsResponse
		if err := client.getJSON(ctx, url, StatusOK, &s); err != nil {
			log.Warn(ctx, "stats poll failed", logger.Error(err))
			continue
		}
		if s.TotalEngineers >= expected && s.QueueLength == 0 {
			log.Info(ctx, "scores published", logger.Int("engineers", s.TotalEngineers))
			return nil
		}
		if config.Verbose {
			log.Info(ctx, "still waiting",
				logger.Int("scored", s.TotalEngineers),
				logger.Int("queued", s.QueueLength))
		}
	}
	return fmt.Errorf("timed out waiting for %d engineers to be scored", expected)
}

// getLeaderboard fetches the top N leaderboard entries.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	log := logger.Get().Named("mockevents")

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/api/v1/leaderboard?limit=%d", config.BaseURL, config.TopN)

	var entries []Entry
	if err := client.getJSON(ctx, url, StatusOK, &entries); err != nil {
		return nil, err
	}
	stats.LeaderboardEntries = len(entries)

	log.Info(ctx, "leaderboard retrieved", logger.Int("entries", len(entries)))
	return entries, nil
}

// finalize stamps the end time and logs the run statistics.
func finalize(stats *Stats) {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Named("mockevents").Info(context.Background(), "final statistics",
		logger.Int("engineersGenerated", stats.EngineersGenerated),
		logger.Int("incidentsGenerated", stats.IncidentsGenerated),
		logger.Int("commitsGenerated", stats.CommitsGenerated),
		logger.Int("pullRequestsGenerated", stats.PullRequestsGenerated),
		logger.Int("reviewsGenerated", stats.ReviewsGenerated),
		logger.Int("messagesGenerated", stats.MessagesGenerated),
		logger.Int("windowsAnalyzed", stats.WindowsAnalyzed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()))
}
