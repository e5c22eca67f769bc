package resultstore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charleschow/draw-progression/internal/core/league"
	"github.com/charleschow/draw-progression/internal/telemetry"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}

func round5Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round5(*v)
	return &r
}

// RunMeta describes one orchestrator run.
// startedLayout is fixed width so started_at sorts chronologically as text.
const startedLayout = "2006-01-02T15:04:05.000000000Z"

type RunMeta struct {
	ID        string
	StartedAt time.Time
	Staking   []int64
	DrawOdds  float64
}

// NewRunMeta stamps a fresh run ID.
func NewRunMeta(staking []int64, drawOdds float64) RunMeta {
	return RunMeta{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Staking:   append([]int64(nil), staking...),
		DrawOdds:  drawOdds,
	}
}

// Store persists run reports in SQLite. Every row carries its run ID so
// several runs can be compared side by side.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id           TEXT    PRIMARY KEY,
		started_at   TEXT    NOT NULL,
		elapsed_ms   INTEGER NOT NULL,
		leagues      INTEGER NOT NULL,
		stats_rows   INTEGER NOT NULL,
		progressions INTEGER NOT NULL,
		warnings     INTEGER NOT NULL,
		staking      TEXT    NOT NULL,
		draw_odds    REAL    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_stats (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id           TEXT    NOT NULL,
		country          TEXT    NOT NULL,
		league           TEXT    NOT NULL,
		team             TEXT    NOT NULL,
		total_matches    INTEGER,
		total_draws      INTEGER,
		draw_pct         REAL,
		current_streak   INTEGER,
		longest_streak   INTEGER,
		avg_streak       REAL,
		draw_consistency REAL,
		trend_slope      REAL,
		seasons          INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS progressions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id         TEXT    NOT NULL,
		country        TEXT    NOT NULL,
		league         TEXT    NOT NULL,
		season         TEXT    NOT NULL,
		scenario       TEXT    NOT NULL,
		team           TEXT    NOT NULL,
		matches_to_mid INTEGER,
		games          INTEGER,
		outcome        TEXT,
		profit_loss    TEXT,
		max_capital    INTEGER,
		capped         INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS scenario_summaries (
		run_id          TEXT    NOT NULL,
		scenario        TEXT    NOT NULL,
		runs            INTEGER,
		wins            INTEGER,
		losses          INTEGER,
		capped          INTEGER,
		profit_loss     TEXT,
		avg_profit_loss TEXT,
		max_capital     INTEGER,
		PRIMARY KEY (run_id, scenario)
	)`,
	`CREATE TABLE IF NOT EXISTS warnings (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT    NOT NULL,
		kind   TEXT    NOT NULL,
		unit   TEXT    NOT NULL,
		detail TEXT,
		count  INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ts_run ON team_stats(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pr_run ON progressions(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_w_run ON warnings(run_id)`,
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	var runs int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		db.Close()
		return nil, fmt.Errorf("read run count: %w", err)
	}
	telemetry.Infof("Opened results db  path=%s  runs=%d", path, runs)

	return &Store{db: db}, nil
}

// SaveReport writes the whole report in one transaction.
func (s *Store) SaveReport(ctx context.Context, meta RunMeta, r *league.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, elapsed_ms, leagues, stats_rows, progressions, warnings, staking, draw_odds)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		meta.ID,
		meta.StartedAt.UTC().Format(startedLayout),
		r.Elapsed.Milliseconds(),
		r.Leagues,
		len(r.Stats),
		len(r.Progressions),
		len(r.Warnings),
		joinStakes(meta.Staking),
		meta.DrawOdds,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	statsStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO team_stats (
			run_id, country, league, team, total_matches, total_draws, draw_pct,
			current_streak, longest_streak, avg_streak, draw_consistency, trend_slope, seasons
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare team_stats: %w", err)
	}
	defer statsStmt.Close()
	for _, st := range r.Stats {
		if _, err := statsStmt.ExecContext(ctx,
			meta.ID, st.Country, st.League, st.Team,
			st.TotalMatches, st.TotalDraws, round5(st.DrawPct),
			st.CurrentNoDrawStreak, st.LongestNoDrawStreak, round5(st.AvgNoDrawStreak),
			round5Ptr(st.DrawConsistency), round5(st.TrendSlope), st.Seasons,
		); err != nil {
			return fmt.Errorf("insert team_stats %s: %w", st.Team, err)
		}
	}

	progStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO progressions (
			run_id, country, league, season, scenario, team, matches_to_mid,
			games, outcome, profit_loss, max_capital, capped
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare progressions: %w", err)
	}
	defer progStmt.Close()
	for _, p := range r.Progressions {
		if _, err := progStmt.ExecContext(ctx,
			meta.ID, p.Country, p.League, p.Season, p.Scenario.String(), p.Team, p.MatchesToMid,
			p.Result.Matches, p.Result.State.String(), p.Result.ProfitLoss.String(),
			p.Result.MaxCapital, p.Result.Capped,
		); err != nil {
			return fmt.Errorf("insert progression %s/%s: %w", p.Season, p.Team, err)
		}
	}

	for _, sum := range r.Summaries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scenario_summaries (
				run_id, scenario, runs, wins, losses, capped, profit_loss, avg_profit_loss, max_capital
			) VALUES (?,?,?,?,?,?,?,?,?)`,
			meta.ID, sum.Scenario.String(), sum.Runs, sum.Wins, sum.Losses, sum.Capped,
			sum.ProfitLoss.String(), sum.AvgProfitLoss().StringFixed(2), sum.MaxCapital,
		); err != nil {
			return fmt.Errorf("insert summary %s: %w", sum.Scenario, err)
		}
	}

	for _, w := range r.Warnings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO warnings (run_id, kind, unit, detail, count) VALUES (?,?,?,?,?)`,
			meta.ID, string(w.Kind), w.Unit.String(), w.Detail, w.Count,
		); err != nil {
			return fmt.Errorf("insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", meta.ID, err)
	}
	telemetry.Infof("results db: saved run %s  stats=%d  progressions=%d  warnings=%d",
		meta.ID, len(r.Stats), len(r.Progressions), len(r.Warnings))
	return nil
}

// Prune deletes all but the newest keep runs and returns how many runs
// were removed. keep <= 0 disables pruning.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const stale = `SELECT id FROM runs ORDER BY started_at DESC LIMIT -1 OFFSET ?`
	for _, table := range []string{"team_stats", "progressions", "scenario_summaries", "warnings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id IN (`+stale+`)`, keep); err != nil {
			return 0, fmt.Errorf("prune %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id IN (`+stale+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune: %w", err)
	}
	deleted, _ := res.RowsAffected()
	if deleted > 0 {
		telemetry.Infof("results db: pruned %d old runs (kept %d)", deleted, keep)
	}
	return deleted, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func joinStakes(stakes []int64) string {
	parts := make([]string, len(stakes))
	for i, v := range stakes {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
