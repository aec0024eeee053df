package mockevents

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Risk tier floors, matching the published scoring bands.
const (
	mediumTierFloor = 4.0
	highTierFloor   = 7.0
)

// engineerResult carries the fields of GET /api/v1/engineers/{id} the
// verifier cross-checks against the leaderboard.
type engineerResult struct {
	Rank   int `json:"rank"`
	Result struct {
		EngineerID string  `json:"engineer_id"`
		Score      float64 `json:"score"`
		Tier       string  `json:"tier"`
	} `json:"result"`
}

// verifyResults checks the leaderboard for internal consistency and
// cross-checks its top entry against the per-engineer endpoint.
func verifyResults(ctx context.Context, config *Config, leaderboard []Entry) error {
	log := logger.Get().Named("mockevents")
	log.Info(ctx, "verifying results")

	if len(leaderboard) == 0 {
		return fmt.Errorf("no leaderboard entries to verify")
	}

	if err := verifyOrdering(leaderboard); err != nil {
		return err
	}
	if err := verifyTiers(leaderboard); err != nil {
		return err
	}
	if err := verifyTopEntry(ctx, config, leaderboard[0]); err != nil {
		return err
	}

	displayTopEngineers(ctx, leaderboard, config.Verbose)
	log.Info(ctx, "result verification completed")
	return nil
}

// verifyOrdering checks ranks are contiguous from 1 and scores never
// increase down the board.
func verifyOrdering(leaderboard []Entry) error {
	for i, entry := range leaderboard {
		if entry.Rank != i+1 {
			return fmt.Errorf("entry %d has rank %d, expected %d", i, entry.Rank, i+1)
		}
		if i > 0 && entry.Score > leaderboard[i-1].Score {
			return fmt.Errorf("leaderboard not sorted: entry %d (%.3f) scores above entry %d (%.3f)",
				i, entry.Score, i-1, leaderboard[i-1].Score)
		}
	}
	return nil
}

// verifyTiers checks each entry's tier matches its score band.
func verifyTiers(leaderboard []Entry) error {
	for i, entry := range leaderboard {
		if want := tierFor(entry.Score); entry.Tier != want {
			return fmt.Errorf("entry %d (%s, score %.3f) has tier %q, expected %q",
				i, entry.EngineerID, entry.Score, entry.Tier, want)
		}
	}
	return nil
}

// verifyTopEntry fetches the highest-risk engineer directly and checks
// the detail endpoint agrees with the leaderboard.
func verifyTopEntry(ctx context.Context, config *Config, top Entry) error {
	client := newHTTPClient(config.Timeout)
	detailURL := config.BaseURL + "/api/v1/engineers/" + url.PathEscape(top.EngineerID)

	var detail engineerResult
	if err := client.getJSON(ctx, detailURL, StatusOK, &detail); err != nil {
		return fmt.Errorf("fetching top engineer: %w", err)
	}
	if detail.Rank != top.Rank {
		return fmt.Errorf("top engineer rank mismatch: detail says %d, leaderboard says %d",
			detail.Rank, top.Rank)
	}
	if detail.Result.Score != top.Score {
		return fmt.Errorf("top engineer score mismatch: detail says %.3f, leaderboard says %.3f",
			detail.Result.Score, top.Score)
	}
	return nil
}

func tierFor(score float64) string {
	switch {
	case score >= highTierFloor:
		return "high"
	case score >= mediumTierFloor:
		return "medium"
	default:
		return "low"
	}
}

// displayTopEngineers logs the highest-risk engineers, with score
// statistics in verbose mode.
func displayTopEngineers(ctx context.Context, leaderboard []Entry, verbose bool) {
	log := logger.Get().Named("mockevents")

	topN := 10
	if len(leaderboard) < topN {
		topN = len(leaderboard)
	}
	for i := 0; i < topN; i++ {
		entry := leaderboard[i]
		log.Info(ctx, "leaderboard entry",
			logger.Int("rank", entry.Rank),
			logger.String("engineer", entry.EngineerID),
			logger.Float64("score", entry.Score),
			logger.String("tier", entry.Tier),
			logger.String("trend", entry.Trend))
	}

	if verbose && len(leaderboard) > 0 {
		sum := 0.0
		for _, entry := range leaderboard {
			sum += entry.Score
		}
		log.Info(ctx, "score statistics",
			logger.Float64("average", sum/float64(len(leaderboard))),
			logger.Float64("maximum", leaderboard[0].Score),
			logger.Float64("minimum", leaderboard[len(leaderboard)-1].Score))
	}
}
