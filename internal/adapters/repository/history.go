package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// historySchema holds one row per engineer and analysis period. The
// trend tag for a run compares against the newest earlier row of the
// same engineer covering a period of the same length.
const historySchema = `
CREATE TABLE IF NOT EXISTS score_history (
	engineer_id   TEXT    NOT NULL,
	period_start  INTEGER NOT NULL,
	period_end    INTEGER NOT NULL,
	score         REAL    NOT NULL,
	tier          TEXT    NOT NULL,
	recorded_at   INTEGER NOT NULL,
	PRIMARY KEY (engineer_id, period_end)
);
CREATE INDEX IF NOT EXISTS idx_history_engineer_end
	ON score_history (engineer_id, period_end DESC);
`

// History persists per-period composed scores in SQLite so consecutive
// runs can be compared.
type History struct {
	db        *sql.DB
	retention int
}

// HistoryOption applies a configuration option to the History store.
type HistoryOption func(*History)

// WithRetention keeps only the newest n periods per engineer, pruned
// on every record. Zero or negative keeps everything.
func WithRetention(n int) HistoryOption {
	return func(h *History) {
		h.retention = n
	}
}

// OpenHistory opens (and if needed creates) the SQLite history file.
func OpenHistory(path string, opts ...HistoryOption) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	h := &History{db: db}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Record stores one run's composed score for an engineer. Re-running
// the same period overwrites the earlier row.
func (h *History) Record(ctx context.Context, result model.BurnoutResult) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO score_history (engineer_id, period_start, period_end, score, tier, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (engineer_id, period_end) DO UPDATE SET
			period_start = excluded.period_start,
			score        = excluded.score,
			tier         = excluded.tier,
			recorded_at  = excluded.recorded_at`,
		result.EngineerID,
		result.PeriodStart.Unix(),
		result.PeriodEnd.Unix(),
		result.Score,
		string(result.Tier),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record history for %s: %w", result.EngineerID, err)
	}
	if h.retention > 0 {
		return h.prune(ctx, result.EngineerID)
	}
	return nil
}

// PreviousScore returns the newest composed score for an engineer from
// a period that ended before the given time and spans the same length.
// Only like-for-like periods are comparable; a 7-day run never trends
// against a 30-day one. The second return is false when no matching
// earlier period exists.
func (h *History) PreviousScore(ctx context.Context, engineerID string, before time.Time, length time.Duration) (float64, bool, error) {
	var score float64
	err := h.db.QueryRowContext(ctx, `
		SELECT score FROM score_history
		WHERE engineer_id = ? AND period_end < ?
		AND (period_end - period_start) = ?
		ORDER BY period_end DESC
		LIMIT 1`,
		engineerID, before.Unix(), int64(length.Seconds()),
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("previous score for %s: %w", engineerID, err)
	}
	return score, true, nil
}

// PeriodScore is one historical score with the period it covers.
type PeriodScore struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Score       float64   `json:"score"`
	Tier        string    `json:"tier"`
}

// Series returns up to limit periods for an engineer, oldest first.
func (h *History) Series(ctx context.Context, engineerID string, limit int) ([]PeriodScore, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT period_start, period_end, score, tier FROM (
			SELECT period_start, period_end, score, tier
			FROM score_history
			WHERE engineer_id = ?
			ORDER BY period_end DESC
			LIMIT ?
		) ORDER BY period_end ASC`,
		engineerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history series for %s: %w", engineerID, err)
	}
	defer rows.Close()

	var series []PeriodScore
	for rows.Next() {
		var ps PeriodScore
		var start, end int64
		if err := rows.Scan(&start, &end, &ps.Score, &ps.Tier); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		ps.PeriodStart = time.Unix(start, 0).UTC()
		ps.PeriodEnd = time.Unix(end, 0).UTC()
		series = append(series, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history series for %s: %w", engineerID, err)
	}
	return series, nil
}

// prune drops rows beyond the retention window for one engineer.
func (h *History) prune(ctx context.Context, engineerID string) error {
	_, err := h.db.ExecContext(ctx, `
		DELETE FROM score_history
		WHERE engineer_id = ? AND period_end NOT IN (
			SELECT period_end FROM score_history
			WHERE engineer_id = ?
			ORDER BY period_end DESC
			LIMIT ?
		)`,
		engineerID, engineerID, h.retention,
	)
	if err != nil {
		return fmt.Errorf("prune history for %s: %w", engineerID, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
