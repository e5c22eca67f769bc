package stats

import (
	"fmt"
	"sort"

	"github.com/charleschow/draw-progression/internal/core/match"
)

// TeamStats summarises one team's draw behaviour over a multi-season window.
type TeamStats struct {
	Team                string
	TotalMatches        int
	TotalDraws          int
	DrawPct             float64
	CurrentNoDrawStreak int
	LongestNoDrawStreak int
	AvgNoDrawStreak     float64
	// DrawConsistency is the sample std dev of per-season draw %.
	// Nil when fewer than two seasons are present.
	DrawConsistency *float64
	TrendSlope      float64
	Seasons         int
}

// SeasonDrawPct is the draw percentage of a single season.
type SeasonDrawPct struct {
	Season  string
	Matches int
	DrawPct float64
}

// Calculate builds the statistics record for team from its chronological
// history. An empty history yields (nil, nil). A season label without a
// leading year only disables the trend: the record is still returned,
// with TrendSlope 0, together with an error wrapping match.ErrMalformedSeason.
func Calculate(team string, history []match.Match) (*TeamStats, error) {
	if len(history) == 0 {
		return nil, nil
	}

	ts := &TeamStats{Team: team, TotalMatches: len(history)}
	for _, m := range history {
		if m.IsDraw() {
			ts.TotalDraws++
		}
	}
	ts.DrawPct = 100 * float64(ts.TotalDraws) / float64(ts.TotalMatches)

	runs := noDrawRuns(history)
	if len(runs) > 0 {
		var sum int
		for _, r := range runs {
			sum += r
			if r > ts.LongestNoDrawStreak {
				ts.LongestNoDrawStreak = r
			}
		}
		ts.AvgNoDrawStreak = float64(sum) / float64(len(runs))
	}
	ts.CurrentNoDrawStreak = currentNoDrawStreak(history)

	seasons := PerSeason(history)
	ts.Seasons = len(seasons)
	pcts := make([]float64, len(seasons))
	for i, s := range seasons {
		pcts[i] = s.DrawPct
	}
	if sd, ok := sampleStdDev(pcts); ok {
		ts.DrawConsistency = &sd
	}

	slope, err := trendSlope(seasons)
	if err != nil {
		return ts, fmt.Errorf("trend for %s: %w", team, err)
	}
	ts.TrendSlope = slope
	return ts, nil
}

// noDrawRuns returns the length of every maximal run of non-draw matches.
func noDrawRuns(history []match.Match) []int {
	var runs []int
	current := 0
	for _, m := range history {
		if m.IsDraw() {
			if current > 0 {
				runs = append(runs, current)
			}
			current = 0
			continue
		}
		current++
	}
	if current > 0 {
		runs = append(runs, current)
	}
	return runs
}

// currentNoDrawStreak counts matches after the most recent draw.
// A team that never drew in the window gets the full window length.
func currentNoDrawStreak(history []match.Match) int {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].IsDraw() {
			return len(history) - 1 - i
		}
	}
	return len(history)
}

// PerSeason groups history by season label in first-appearance order.
func PerSeason(history []match.Match) []SeasonDrawPct {
	groups, order := match.BySeason(history)
	out := make([]SeasonDrawPct, 0, len(order))
	for _, season := range order {
		ms := groups[season]
		draws := 0
		for _, m := range ms {
			if m.IsDraw() {
				draws++
			}
		}
		out = append(out, SeasonDrawPct{
			Season:  season,
			Matches: len(ms),
			DrawPct: 100 * float64(draws) / float64(len(ms)),
		})
	}
	return out
}

func trendSlope(seasons []SeasonDrawPct) (float64, error) {
	if len(seasons) < 2 {
		return 0, nil
	}
	xs := make([]float64, len(seasons))
	ys := make([]float64, len(seasons))
	for i, s := range seasons {
		year, err := match.SeasonStartYear(s.Season)
		if err != nil {
			return 0, err
		}
		xs[i] = float64(year)
		ys[i] = s.DrawPct
	}
	slope, _ := olsSlope(xs, ys)
	return slope, nil
}

// SortForProgression orders records by longest current no-draw streak,
// then by draw %, both descending. Ties keep their input order.
func SortForProgression(records []TeamStats) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.CurrentNoDrawStreak != b.CurrentNoDrawStreak {
			return a.CurrentNoDrawStreak > b.CurrentNoDrawStreak
		}
		return a.DrawPct > b.DrawPct
	})
}

// Columns lists the export column names for TeamStats, in order.
var Columns = []string{
	"Team",
	"Total Matches",
	"Total Draws",
	"Draw Percentage (%)",
	"Current Streak Without Draw",
	"Longest Streak Without Draw",
	"Average Streak Without Draw",
	"Draw Consistency (Std Dev %)",
	"Draw Trend (Slope)",
}
