package league

import (
	"github.com/charleschow/draw-progression/internal/core/midseason"
	"github.com/charleschow/draw-progression/internal/core/progression"
	"github.com/charleschow/draw-progression/internal/core/stats"
)

// TeamStatsRecord is a full-history statistics row for one team in one league.
type TeamStatsRecord struct {
	Country string
	League  string
	stats.TeamStats
}

// ProgressionRecord is one simulated progression: a team picked by a
// scenario at the mid-season mark of a season.
type ProgressionRecord struct {
	Country      string
	League       string
	Season       string
	Scenario     midseason.Scenario
	Team         string
	MatchesToMid int
	Result       progression.Result
}

// ProgressionColumns lists the export column names for ProgressionRecord.
var ProgressionColumns = []string{
	"Season",
	"Scenario",
	"Team",
	"Matches To 50% Mark",
	"Games In Progression",
	"Outcome",
	"Profit/Loss (Units)",
	"Max Capital Needed (Units)",
	"Capped",
}

type ScenarioSummary struct {
	Scenario midseason.Scenario
	progression.Tally
}

// Summarize tallies progressions per scenario. Every scenario is present,
// in midseason.Scenarios order, even when it has no runs.
func Summarize(records []ProgressionRecord) []ScenarioSummary {
	out := make([]ScenarioSummary, len(midseason.Scenarios))
	pos := make(map[midseason.Scenario]int, len(out))
	for i, sc := range midseason.Scenarios {
		out[i].Scenario = sc
		pos[sc] = i
	}
	for _, r := range records {
		if i, ok := pos[r.Scenario]; ok {
			out[i].Add(r.Result)
		}
	}
	return out
}
