package resultstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RunInfo struct {
	ID           string
	StartedAt    time.Time
	Elapsed      time.Duration
	Leagues      int
	StatsRows    int
	Progressions int
	Warnings     int
	Staking      string
	DrawOdds     float64
}

// RecentRuns lists the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, elapsed_ms, leagues, stats_rows, progressions, warnings, staking, draw_odds
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			ri      RunInfo
			started string
			elapsed int64
		)
		if err := rows.Scan(&ri.ID, &started, &elapsed, &ri.Leagues, &ri.StatsRows,
			&ri.Progressions, &ri.Warnings, &ri.Staking, &ri.DrawOdds); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ri.StartedAt, _ = time.Parse(startedLayout, started)
		ri.Elapsed = time.Duration(elapsed) * time.Millisecond
		out = append(out, ri)
	}
	return out, rows.Err()
}

type SummaryRow struct {
	Scenario      string
	Runs          int
	Wins          int
	Losses        int
	Capped        int
	ProfitLoss    decimal.Decimal
	AvgProfitLoss decimal.Decimal
	MaxCapital    int64
}

// ScenarioSummaries returns the per-scenario totals stored for runID.
func (s *Store) ScenarioSummaries(ctx context.Context, runID string) ([]SummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scenario, runs, wins, losses, capped, profit_loss, avg_profit_loss, max_capital
		 FROM scenario_summaries WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var (
			sr       SummaryRow
			pl, avgs string
		)
		if err := rows.Scan(&sr.Scenario, &sr.Runs, &sr.Wins, &sr.Losses, &sr.Capped, &pl, &avgs, &sr.MaxCapital); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if sr.ProfitLoss, err = decimal.NewFromString(pl); err != nil {
			return nil, fmt.Errorf("summary %s profit_loss %q: %w", sr.Scenario, pl, err)
		}
		if sr.AvgProfitLoss, err = decimal.NewFromString(avgs); err != nil {
			return nil, fmt.Errorf("summary %s avg_profit_loss %q: %w", sr.Scenario, avgs, err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

type WarningRow struct {
	Kind   string
	Unit   string
	Detail string
	Count  int
}

func (s *Store) Warnings(ctx context.Context, runID string) ([]WarningRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, unit, detail, count FROM warnings WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	var out []WarningRow
	for rows.Next() {
		var w WarningRow
		if err := rows.Scan(&w.Kind, &w.Unit, &w.Detail, &w.Count); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// CountRows returns the number of rows in table stored for runID.
func (s *Store) CountRows(ctx context.Context, table, runID string) (int, error) {
	switch table {
	case "team_stats", "progressions", "scenario_summaries", "warnings":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
