package csvexport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/charleschow/draw-progression/internal/core/league"
	"github.com/charleschow/draw-progression/internal/core/midseason"
	"github.com/charleschow/draw-progression/internal/core/progression"
	"github.com/charleschow/draw-progression/internal/core/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	sd := 3.14159
	report := &league.Report{
		Stats: []league.TeamStatsRecord{
			{Country: "England", League: "E0", TeamStats: stats.TeamStats{
				Team: "Everton", TotalMatches: 190, TotalDraws: 57, DrawPct: 30,
				CurrentNoDrawStreak: 4, LongestNoDrawStreak: 11, AvgNoDrawStreak: 2.456,
				DrawConsistency: &sd, TrendSlope: 1.23456,
			}},
			{Country: "England", League: "E0", TeamStats: stats.TeamStats{Team: "Arsenal", TotalMatches: 38, TotalDraws: 5, DrawPct: 13.157}},
			{Country: "Spain", League: "SP1", TeamStats: stats.TeamStats{Team: "Getafe", TotalMatches: 38}},
		},
		Progressions: []league.ProgressionRecord{
			{
				Country: "England", League: "E0", Season: "2024-2025", Scenario: midseason.HighestLossPct,
				Team: "Southampton", MatchesToMid: 19,
				Result: progression.Result{State: progression.Win, Matches: 4, ProfitLoss: decimal.RequireFromString("3.2"), MaxCapital: 3},
			},
			{
				Country: "England", League: "E0", Season: "2024-2025", Scenario: midseason.LowestDrawPct,
				Team: "Brentford", MatchesToMid: 19,
				Result: progression.Result{State: progression.Loss, Matches: 3, ProfitLoss: decimal.NewFromInt(-4), MaxCapital: 2, Capped: true},
			},
		},
	}

	paths, err := WriteReport(dir, report)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "analysis", "England", "England_E0_draw_analysis.csv"),
		filepath.Join(dir, "analysis", "Spain", "Spain_SP1_draw_analysis.csv"),
		filepath.Join(dir, "simulation", "England", "England_E0_progression.csv"),
	}, paths)

	rows := readCSV(t, paths[0])
	require.Len(t, rows, 3)
	assert.Equal(t, stats.Columns, rows[0])
	assert.Equal(t, []string{"Everton", "190", "57", "30.00", "4", "11", "2.46", "3.14", "1.2346"}, rows[1])
	assert.Equal(t, "", rows[2][7], "absent consistency is an empty cell")

	rows = readCSV(t, paths[2])
	require.Len(t, rows, 3)
	assert.Equal(t, league.ProgressionColumns, rows[0])
	assert.Equal(t, []string{"2024-2025", "Highest Loss %", "Southampton", "19", "4", "Win", "3.20", "3", "false"}, rows[1])
	assert.Equal(t, []string{"2024-2025", "Lowest Draw %", "Brentford", "19", "3", "Loss", "-4.00", "2", "true"}, rows[2])
}

func TestWriteReportEmpty(t *testing.T) {
	paths, err := WriteReport(t.TempDir(), &league.Report{})
	require.NoError(t, err)
	assert.Empty(t, paths)
}
