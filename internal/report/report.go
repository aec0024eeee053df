// Package report writes analysis runs to disk: one summary file per
// run and one detailed file per engineer, as indented JSON.
package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Output file layout.
const (
	SummaryFile  = "burnout_analysis.json"
	EngineersDir = "engineers"

	reportDirPerm  = 0o755
	reportFilePerm = 0o644
)

// Summary is the run-level report.
type Summary struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	RunID            string            `json:"run_id,omitempty"`
	PeriodStart      time.Time         `json:"period_start"`
	PeriodEnd        time.Time         `json:"period_end"`
	TotalEngineers   int               `json:"total_engineers"`
	ActiveEngineers  int               `json:"active_engineers"`
	RiskDistribution map[string]int    `json:"risk_distribution"`
	AverageScore     float64           `json:"average_score"`
	AverageActive    float64           `json:"average_score_active"`
	Engineers        []EngineerSummary `json:"engineers"`
}

// EngineerSummary is one compact row in the run summary, ordered by
// score descending.
type EngineerSummary struct {
	EngineerID string  `json:"engineer_id"`
	Score      float64 `json:"score"`
	Tier       string  `json:"tier"`
	Trend      string  `json:"trend,omitempty"`
	Status     string  `json:"status"`
}

// EngineerReport is the detailed per-engineer file.
type EngineerReport struct {
	Result   model.BurnoutResult `json:"result"`
	Insights Insights            `json:"insights"`
}

// Writer lands reports under an output directory.
type Writer struct {
	outputDir string
	log       logger.Logger
}

// NewWriter creates a report writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		log:       logger.Get().Named("report"),
	}
}

// Write lands the summary and the per-engineer files for one run and
// returns the summary file path. results are expected ordered by score
// descending, as the store returns them.
func (w *Writer) Write(ctx context.Context, run types.RunSummary, results []model.BurnoutResult) (string, error) {
	summary := BuildSummary(run, results)

	summaryPath := filepath.Join(w.outputDir, SummaryFile)
	if err := writeJSON(summaryPath, summary); err != nil {
		return "", err
	}

	for _, result := range results {
		path := filepath.Join(w.outputDir, EngineersDir, engineerFileName(result.EngineerID))
		detail := EngineerReport{
			Result:   result,
			Insights: BuildInsights(result),
		}
		if err := writeJSON(path, detail); err != nil {
			return "", err
		}
	}

	w.log.Info(ctx, "report written",
		logger.String("summary", summaryPath),
		logger.Int("engineers", len(results)),
	)
	return summaryPath, nil
}

// BuildSummary folds a run's results into the run-level report.
func BuildSummary(run types.RunSummary, results []model.BurnoutResult) Summary {
	summary := Summary{
		GeneratedAt: time.Now().UTC(),
		RunID:       run.RunID,
		PeriodStart: run.PeriodStart,
		PeriodEnd:   run.PeriodEnd,
		RiskDistribution: map[string]int{
			string(model.TierLow):    0,
			string(model.TierMedium): 0,
			string(model.TierHigh):   0,
		},
		TotalEngineers: len(results),
		Engineers:      make([]EngineerSummary, 0, len(results)),
	}

	var sum, activeSum float64
	for _, result := range results {
		summary.RiskDistribution[string(result.Tier)]++
		sum += result.Score
		if active(result) {
			summary.ActiveEngineers++
			activeSum += result.Score
		}
		summary.Engineers = append(summary.Engineers, EngineerSummary{
			EngineerID: result.EngineerID,
			Score:      result.Score,
			Tier:       string(result.Tier),
			Trend:      string(result.Trend),
			Status:     StatusFor(result.Score),
		})
	}
	if summary.TotalEngineers > 0 {
		summary.AverageScore = sum / float64(summary.TotalEngineers)
	}
	if summary.ActiveEngineers > 0 {
		summary.AverageActive = activeSum / float64(summary.ActiveEngineers)
	}
	return summary
}

// active reports whether any source contributed evidence to the result.
func active(result model.BurnoutResult) bool {
	for _, dim := range []model.DimensionScore{
		result.Exhaustion,
		result.Depersonalization,
		result.Accomplishment,
	} {
		if len(dim.Sources) > 0 {
			return true
		}
	}
	return false
}

// engineerFileName maps an engineer id onto a safe file name.
func engineerFileName(engineerID string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(engineerID)
	return safe + ".json"
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), reportDirPerm); err != nil {
		return errors.Wrapf(err, "create report dir for %s", path)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshal report %s", path)
	}
	if err := os.WriteFile(path, data, reportFilePerm); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}
