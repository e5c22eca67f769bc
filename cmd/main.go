package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charleschow/draw-progression/internal/adapters/inbound/footballdata"
	"github.com/charleschow/draw-progression/internal/adapters/outbound/csvexport"
	"github.com/charleschow/draw-progression/internal/adapters/outbound/discord"
	"github.com/charleschow/draw-progression/internal/adapters/outbound/resultstore"
	"github.com/charleschow/draw-progression/internal/config"
	"github.com/charleschow/draw-progression/internal/core/league"
	"github.com/charleschow/draw-progression/internal/core/stats"
	"github.com/charleschow/draw-progression/internal/core/teamname"
	"github.com/charleschow/draw-progression/internal/telemetry"
)

const maxWarningsShown = 20

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting draw progression run")

	// ── League configuration ────────────────────────────────────
	leagues, err := config.LoadLeagues(cfg.LeaguesConfigPath)
	if err != nil {
		telemetry.Errorf("Failed to load leagues config: %v", err)
		os.Exit(1)
	}
	seasons := leagues.SeasonLabels()
	telemetry.Infof("Leagues loaded  countries=%d  seasons=%s..%s  stakes=%d  odds=%.2f  workers=%d",
		len(leagues.Countries), seasons[len(seasons)-1], seasons[0], len(leagues.Staking), leagues.DrawOdds, cfg.Workers)

	// ── Orchestrator ────────────────────────────────────────────
	provider := footballdata.NewFileProvider(cfg.DataDir, teamname.FootballDataAliases)
	runner, err := league.NewRunner(provider, leagues, cfg.Workers)
	if err != nil {
		telemetry.Errorf("Invalid staking configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta := resultstore.NewRunMeta(leagues.Staking, leagues.DrawOdds)
	report, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			telemetry.Warnf("Run interrupted")
		} else {
			telemetry.Errorf("Run failed: %v", err)
		}
		os.Exit(1)
	}

	// ── Sinks ───────────────────────────────────────────────────
	if _, err := csvexport.WriteReport(cfg.OutputDir, report); err != nil {
		telemetry.Errorf("CSV export: %v", err)
	}

	store, err := resultstore.OpenStore(cfg.ResultsDBPath)
	if err != nil {
		telemetry.Warnf("Results db disabled: %v", err)
	} else {
		if err := store.SaveReport(ctx, meta, report); err != nil {
			telemetry.Errorf("Results db: %v", err)
		} else if _, err := store.Prune(ctx, cfg.ResultsKeepRuns); err != nil {
			telemetry.Warnf("Results db prune: %v", err)
		}
		store.Close()
	}

	printSummary(report)
	printDrawProne(report, leagues.DrawProneTopN, leagues.DrawProneMinMatches)
	printWarnings(report.Warnings)

	notifier := discord.NewNotifier(cfg.DiscordWebhookURL)
	if notifier.Enabled() {
		if err := notifier.RunSummary(ctx, meta.ID, report); err != nil {
			telemetry.Warnf("Discord: %v", err)
		}
	}

	telemetry.Infof("Run %s complete in %s  rows=%d  malformed=%d  undated=%d  skipped=%d  stats=%d  progressions=%d",
		meta.ID,
		report.Elapsed.Round(time.Millisecond),
		telemetry.Metrics.RowsLoaded.Value(),
		telemetry.Metrics.MalformedRows.Value(),
		telemetry.Metrics.UndatedRows.Value(),
		telemetry.Metrics.UnitsSkipped.Value(),
		telemetry.Metrics.StatsRecords.Value(),
		telemetry.Metrics.Progressions.Value(),
	)
	if lt := telemetry.Metrics.LeagueLatency; lt.Count() > 0 {
		telemetry.Infof("League latency  p50=%s  p99=%s  n=%d", lt.P50(), lt.P99(), lt.Count())
	}
}

func printSummary(r *league.Report) {
	fmt.Println()
	fmt.Println("=== Scenario summary ===")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tRuns\tWins\tLosses\tWin %\tP&L\tAvg P&L\tMax Stake")
	fmt.Fprintln(w, strings.Repeat("----\t", 8))
	for _, s := range r.Summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\t%s\t%s\t%d\n",
			s.Scenario, s.Runs, s.Wins, s.Losses, s.WinRate(),
			s.ProfitLoss.StringFixed(2), s.AvgProfitLoss().StringFixed(2), s.MaxCapital)
	}
	w.Flush()
}

func printDrawProne(r *league.Report, n, minMatches int) {
	top := stats.TopDrawProne(r.Stats, n, minMatches, func(rec league.TeamStatsRecord) stats.TeamStats {
		return rec.TeamStats
	})
	if len(top) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("=== Most draw-prone teams (min %d matches) ===\n", minMatches)
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLeague\tTeam\t% Draws\tDraws\tMatches")
	fmt.Fprintln(w, strings.Repeat("----\t", 6))
	for i, rec := range top {
		fmt.Fprintf(w, "%d\t%s/%s\t%s\t%.2f\t%d\t%d\n",
			i+1, rec.Country, rec.League, rec.Team, rec.DrawPct, rec.TotalDraws, rec.TotalMatches)
	}
	w.Flush()
}

func printWarnings(ws []league.Warning) {
	if len(ws) == 0 {
		return
	}
	telemetry.Plainf("\n=== Warnings (%d) ===", len(ws))
	for i, warn := range ws {
		if i == maxWarningsShown {
			telemetry.Plainf("... %d more (see results db)", len(ws)-maxWarningsShown)
			break
		}
		telemetry.Plainf("%s", warn)
	}
}
