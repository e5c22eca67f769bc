package league

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charleschow/draw-progression/internal/config"
	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/core/progression"
	"github.com/charleschow/draw-progression/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// MatchProvider supplies one season of one league, in source order.
// A season with no data must return an error wrapping match.ErrMissingInput.
type MatchProvider interface {
	Load(ctx context.Context, country, league, season string) ([]match.Match, match.Quality, error)
}

// Report is everything a run produced. Stats and Progressions follow
// configuration order (country, league, then season newest first).
type Report struct {
	Stats        []TeamStatsRecord
	Progressions []ProgressionRecord
	Summaries    []ScenarioSummary
	Warnings     []Warning
	Leagues      int
	Elapsed      time.Duration
}

// Runner drives statistics and simulations across every configured league.
type Runner struct {
	provider MatchProvider
	cfg      config.Leagues
	sim      *progression.Simulator
	workers  int
}

// NewRunner fails only on configuration no simulation can run with.
// workers < 1 runs leagues sequentially.
func NewRunner(provider MatchProvider, cfg config.Leagues, workers int) (*Runner, error) {
	if provider == nil {
		return nil, errors.New("league: nil match provider")
	}
	sim, err := progression.NewSimulator(cfg.Staking, cfg.DrawOdds, cfg.MaxProgressionSteps)
	if err != nil {
		return nil, fmt.Errorf("league: %w", err)
	}
	if workers < 1 {
		workers = 1
	}
	if cfg.ScenarioTopN <= 0 {
		cfg.ScenarioTopN = 3
	}
	return &Runner{provider: provider, cfg: cfg, sim: sim, workers: workers}, nil
}

type leagueJob struct {
	country string
	league  string
}

type leagueResult struct {
	stats    Outcome[[]TeamStatsRecord]
	seasons  []Outcome[[]ProgressionRecord]
	warnings []Warning
}

// Run processes every league. Per-unit problems become warnings; only a
// cancelled context stops the run early.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	var jobs []leagueJob
	for _, c := range r.cfg.Countries {
		for _, l := range c.Leagues {
			jobs = append(jobs, leagueJob{country: c.Name, league: l})
		}
	}

	results := make([]leagueResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := r.runLeague(gctx, job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Leagues: len(jobs)}
	for _, res := range results {
		report.Warnings = append(report.Warnings, res.warnings...)
		if res.stats.Ok() {
			report.Stats = append(report.Stats, res.stats.Value...)
		} else {
			report.Warnings = append(report.Warnings, *res.stats.Skip)
		}
		for _, s := range res.seasons {
			if s.Ok() {
				report.Progressions = append(report.Progressions, s.Value...)
			} else {
				report.Warnings = append(report.Warnings, *s.Skip)
			}
		}
	}
	report.Summaries = Summarize(report.Progressions)
	report.Elapsed = time.Since(start)

	telemetry.Metrics.StatsRecords.Add(int64(len(report.Stats)))
	telemetry.Metrics.Progressions.Add(int64(len(report.Progressions)))
	return report, nil
}

type loadedSeason struct {
	matches []match.Match
	skip    *Warning
}

// runLeague loads each season once and feeds both the analysis and the
// simulation units. It returns an error only when ctx is done.
func (r *Runner) runLeague(ctx context.Context, job leagueJob) (leagueResult, error) {
	start := time.Now()
	defer func() { telemetry.Metrics.LeagueLatency.Record(time.Since(start)) }()

	var res leagueResult
	labels := r.cfg.SeasonLabels()
	loaded := make(map[string]loadedSeason, len(labels))
	for _, season := range labels {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		unit := Unit{Country: job.country, League: job.league, Season: season}
		matches, quality, err := r.provider.Load(ctx, job.country, job.league, season)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		res.warnings = append(res.warnings, qualityWarnings(unit, quality)...)
		if err != nil {
			w := loadWarning(unit, err)
			loaded[season] = loadedSeason{skip: &w}
			continue
		}
		match.SortByDate(matches)
		loaded[season] = loadedSeason{matches: matches}
	}

	var teamWarnings []Warning
	res.stats, teamWarnings = r.analyse(job, r.cfg.AnalysisSeasonLabels(), loaded)
	res.warnings = append(res.warnings, teamWarnings...)

	for _, season := range labels {
		unit := Unit{Country: job.country, League: job.league, Season: season}
		ls := loaded[season]
		if ls.skip != nil {
			res.seasons = append(res.seasons, Skipped[[]ProgressionRecord](*ls.skip))
			continue
		}
		res.seasons = append(res.seasons, r.simulate(unit, ls.matches))
	}

	log := telemetry.L().With("country", job.country, "league", job.league)
	for _, w := range res.warnings {
		log.Debug(string(w.Kind), "unit", w.Unit.String(), "count", w.Count)
	}
	skipped := 0
	if !res.stats.Ok() {
		skipped++
	}
	for _, s := range res.seasons {
		if !s.Ok() {
			skipped++
		}
	}
	telemetry.Metrics.UnitsSkipped.Add(int64(skipped))
	if skipped > 0 {
		telemetry.Warnf("league %s/%s: %d of %d units skipped", job.country, job.league, skipped, len(labels)+1)
	}
	telemetry.Infof("league %s/%s done in %s", job.country, job.league, time.Since(start).Round(time.Millisecond))
	return res, nil
}

func loadWarning(unit Unit, err error) Warning {
	if errors.Is(err, match.ErrMissingInput) {
		return Warning{Kind: WarnMissingInput, Unit: unit, Detail: err.Error()}
	}
	return Warning{Kind: WarnLoadFailed, Unit: unit, Detail: err.Error()}
}

func qualityWarnings(unit Unit, q match.Quality) []Warning {
	var ws []Warning
	if q.Malformed > 0 {
		ws = append(ws, Warning{Kind: WarnMalformedRows, Unit: unit, Detail: match.ErrMalformedRow.Error(), Count: q.Malformed})
	}
	if q.Undated > 0 {
		ws = append(ws, Warning{Kind: WarnUndatedRows, Unit: unit, Detail: match.ErrUnparseableDate.Error(), Count: q.Undated})
	}
	return ws
}
