package league

import (
	"errors"
	"fmt"

	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/core/stats"
)

// analyse builds full-history statistics for every team seen in the
// analysis window. Seasons are concatenated oldest first, each already
// date sorted, so undated matches stay inside their own season.
func (r *Runner) analyse(job leagueJob, labels []string, loaded map[string]loadedSeason) (Outcome[[]TeamStatsRecord], []Warning) {
	unit := Unit{Country: job.country, League: job.league}

	var all []match.Match
	for i := len(labels) - 1; i >= 0; i-- {
		all = append(all, loaded[labels[i]].matches...)
	}
	if len(all) == 0 {
		return Skipped[[]TeamStatsRecord](Warning{
			Kind:   WarnMissingInput,
			Unit:   unit,
			Detail: fmt.Sprintf("%s: no match data in %d analysis seasons", match.ErrMissingInput, len(labels)),
		}), nil
	}

	var (
		records  []stats.TeamStats
		warnings []Warning
	)
	for _, team := range match.Teams(all) {
		rec, err := stats.Calculate(team, match.Played(all, team))
		if err != nil {
			kind := WarnLoadFailed
			if errors.Is(err, match.ErrMalformedSeason) {
				kind = WarnMalformedSeason
			}
			teamUnit := unit
			teamUnit.Team = team
			warnings = append(warnings, Warning{Kind: kind, Unit: teamUnit, Detail: err.Error()})
		}
		if rec == nil {
			continue
		}
		records = append(records, *rec)
	}
	stats.SortForProgression(records)

	out := make([]TeamStatsRecord, len(records))
	for i, rec := range records {
		out[i] = TeamStatsRecord{Country: job.country, League: job.league, TeamStats: rec}
	}
	return Done(out), warnings
}
