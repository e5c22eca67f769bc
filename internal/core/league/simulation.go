package league

import (
	"fmt"

	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/core/midseason"
)

// simulate picks teams at the mid-season mark under every scenario and
// runs a progression over the rest of each picked team's season.
func (r *Runner) simulate(unit Unit, season []match.Match) Outcome[[]ProgressionRecord] {
	teams := match.Teams(season)
	histories := make(map[string][]match.Match, len(teams))
	for _, t := range teams {
		histories[t] = match.Played(season, t)
	}

	snaps := midseason.BuildAll(teams, histories)
	if len(snaps) == 0 {
		return Skipped[[]ProgressionRecord](Warning{
			Kind:   WarnInsufficientHistory,
			Unit:   unit,
			Detail: fmt.Sprintf("%s: no team reached the mid-season mark", match.ErrInsufficientHistory),
		})
	}

	var out []ProgressionRecord
	for _, sc := range midseason.Scenarios {
		for _, s := range midseason.Rank(snaps, sc, r.cfg.ScenarioTopN) {
			out = append(out, ProgressionRecord{
				Country:      unit.Country,
				League:       unit.League,
				Season:       unit.Season,
				Scenario:     sc,
				Team:         s.Team,
				MatchesToMid: s.MatchesToMid,
				Result:       r.sim.Run(histories[s.Team][s.StartIndex():]),
			})
		}
	}
	return Done(out)
}
