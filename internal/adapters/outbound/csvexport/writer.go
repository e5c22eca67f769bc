package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charleschow/draw-progression/internal/core/league"
	"github.com/charleschow/draw-progression/internal/core/stats"
	"github.com/charleschow/draw-progression/internal/telemetry"
)

// AnalysisPath is <dir>/analysis/<Country>/<Country>_<code>_draw_analysis.csv
func AnalysisPath(dir, country, code string) string {
	return filepath.Join(dir, "analysis", country, fmt.Sprintf("%s_%s_draw_analysis.csv", country, code))
}

// ProgressionPath is <dir>/simulation/<Country>/<Country>_<code>_progression.csv
func ProgressionPath(dir, country, code string) string {
	return filepath.Join(dir, "simulation", country, fmt.Sprintf("%s_%s_progression.csv", country, code))
}

type leagueKey struct{ country, league string }

// WriteReport writes one analysis file and one progression file per
// league that produced rows, and returns the paths written.
func WriteReport(dir string, r *league.Report) ([]string, error) {
	var (
		statsOrder []leagueKey
		statsBy    = make(map[leagueKey][]league.TeamStatsRecord)
		progOrder  []leagueKey
		progBy     = make(map[leagueKey][]league.ProgressionRecord)
	)
	for _, s := range r.Stats {
		k := leagueKey{s.Country, s.League}
		if _, ok := statsBy[k]; !ok {
			statsOrder = append(statsOrder, k)
		}
		statsBy[k] = append(statsBy[k], s)
	}
	for _, p := range r.Progressions {
		k := leagueKey{p.Country, p.League}
		if _, ok := progBy[k]; !ok {
			progOrder = append(progOrder, k)
		}
		progBy[k] = append(progBy[k], p)
	}

	var written []string
	for _, k := range statsOrder {
		path := AnalysisPath(dir, k.country, k.league)
		if err := writeFile(path, stats.Columns, statsRows(statsBy[k])); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	for _, k := range progOrder {
		path := ProgressionPath(dir, k.country, k.league)
		if err := writeFile(path, league.ProgressionColumns, progressionRows(progBy[k])); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	telemetry.Infof("csvexport: wrote %d files under %s", len(written), dir)
	return written, nil
}

func statsRows(records []league.TeamStatsRecord) [][]string {
	rows := make([][]string, len(records))
	for i, s := range records {
		consistency := ""
		if s.DrawConsistency != nil {
			consistency = fixed(*s.DrawConsistency)
		}
		rows[i] = []string{
			s.Team,
			strconv.Itoa(s.TotalMatches),
			strconv.Itoa(s.TotalDraws),
			fixed(s.DrawPct),
			strconv.Itoa(s.CurrentNoDrawStreak),
			strconv.Itoa(s.LongestNoDrawStreak),
			fixed(s.AvgNoDrawStreak),
			consistency,
			strconv.FormatFloat(s.TrendSlope, 'f', 4, 64),
		}
	}
	return rows
}

func progressionRows(records []league.ProgressionRecord) [][]string {
	rows := make([][]string, len(records))
	for i, p := range records {
		rows[i] = []string{
			p.Season,
			p.Scenario.String(),
			p.Team,
			strconv.Itoa(p.MatchesToMid),
			strconv.Itoa(p.Result.Matches),
			p.Result.State.String(),
			p.Result.ProfitLoss.StringFixed(2),
			strconv.FormatInt(p.Result.MaxCapital, 10),
			strconv.FormatBool(p.Result.Capped),
		}
	}
	return rows
}

func fixed(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func writeFile(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
