package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charleschow/draw-progression/internal/adapters/outbound/resultstore"
	"github.com/charleschow/draw-progression/internal/config"
	"github.com/charleschow/draw-progression/internal/telemetry"

	_ "modernc.org/sqlite"
)

var progressionCompact = `SELECT season, country||'/'||league AS league, scenario, team,
	matches_to_mid AS mid, games, outcome, profit_loss AS pl, max_capital AS max_stake
FROM progressions WHERE run_id = ? ORDER BY id DESC LIMIT ?`

var statsCompact = `SELECT country||'/'||league AS league, team, total_matches AS n, total_draws AS d,
	printf('%.1f', draw_pct) AS draw_pct, current_streak AS cur, longest_streak AS longest,
	printf('%.2f', avg_streak) AS avg, printf('%.2f', draw_consistency) AS sd,
	printf('%.3f', trend_slope) AS slope
FROM team_stats WHERE run_id = ? ORDER BY id DESC LIMIT ?`

func main() {
	cfg := config.Load()
	dbPath := flag.String("db", cfg.ResultsDBPath, "results database")
	runs := flag.Int("runs", 5, "number of recent runs to list")
	runID := flag.String("run", "", "run to inspect (default: most recent)")
	n := flag.Int("n", 10, "number of rows to display per table")
	table := flag.String("table", "progressions", "rows to show: progressions, stats, or none")
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel("warn"))

	if *table != "progressions" && *table != "stats" && *table != "none" {
		fmt.Fprintf(os.Stderr, "unknown table %q (use progressions, stats, or none)\n", *table)
		os.Exit(1)
	}
	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", *dbPath, err)
		os.Exit(1)
	}

	store, err := resultstore.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", *dbPath, err)
		os.Exit(1)
	}
	defer store.Close()
	ctx := context.Background()

	recent, err := store.RecentRuns(ctx, *runs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list runs: %v\n", err)
		os.Exit(1)
	}
	if len(recent) == 0 {
		fmt.Println("(no runs)")
		return
	}
	printRuns(recent)

	id := *runID
	if id == "" {
		id = recent[0].ID
	}

	fmt.Printf("\n=== Scenario summary  run=%s ===\n", id)
	sums, err := store.ScenarioSummaries(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summaries: %v\n", err)
		os.Exit(1)
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "scenario\truns\twins\tlosses\tcapped\tpl\tavg_pl\tmax_stake")
	fmt.Fprintln(w, strings.Repeat("----\t", 8))
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%d\n",
			s.Scenario, s.Runs, s.Wins, s.Losses, s.Capped,
			s.ProfitLoss.StringFixed(2), s.AvgProfitLoss.StringFixed(2), s.MaxCapital)
	}
	w.Flush()

	warnings, err := store.Warnings(ctx, id)
	if err == nil && len(warnings) > 0 {
		fmt.Printf("\n=== Warnings (%d, showing %d) ===\n", len(warnings), min(*n, len(warnings)))
		for _, wr := range warnings[:min(*n, len(warnings))] {
			line := fmt.Sprintf("%s %s: %s", wr.Kind, wr.Unit, wr.Detail)
			if wr.Count > 0 {
				line += fmt.Sprintf(" (%d)", wr.Count)
			}
			fmt.Println(line)
		}
	}

	switch *table {
	case "progressions":
		printTable(*dbPath, "Progressions", progressionCompact, id, *n)
	case "stats":
		printTable(*dbPath, "Team stats", statsCompact, id, *n)
	}
}

func printRuns(runs []resultstore.RunInfo) {
	fmt.Println("=== Recent runs ===")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tstarted\telapsed\tleagues\tstats\tprogressions\twarnings\todds")
	fmt.Fprintln(w, strings.Repeat("----\t", 8))
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.2f\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Elapsed,
			r.Leagues, r.StatsRows, r.Progressions, r.Warnings, r.DrawOdds)
	}
	w.Flush()
}

func printTable(dbPath, title, query, runID string, n int) {
	fmt.Printf("\n=== %s ===\n", title)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		fmt.Printf("  (cannot open %s: %v)\n", dbPath, err)
		return
	}
	defer db.Close()

	rows, err := db.Query(query, runID, n)
	if err != nil {
		fmt.Printf("  (query error: %v)\n", err)
		return
	}
	defer rows.Close()

	colNames, _ := rows.Columns()
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(colNames, "\t"))
	fmt.Fprintln(w, strings.Repeat("----\t", len(colNames)))

	vals := make([]any, len(colNames))
	ptrs := make([]any, len(colNames))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var rowBuf [][]string
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			fmt.Fprintf(os.Stderr, "  scan error: %v\n", err)
			continue
		}
		cells := make([]string, len(colNames))
		for i, v := range vals {
			cells[i] = fmtCell(v)
		}
		rowBuf = append(rowBuf, cells)
	}
	if len(rowBuf) == 0 {
		fmt.Println("(no data)")
		return
	}

	// oldest first, like a log tail
	for i := len(rowBuf) - 1; i >= 0; i-- {
		fmt.Fprintln(w, strings.Join(rowBuf[i], "\t"))
	}
	w.Flush()
}

func fmtCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.5f", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case []byte:
		return string(x)
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}
