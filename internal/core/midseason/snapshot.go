package midseason

import "github.com/charleschow/draw-progression/internal/core/match"

// Snapshot describes a team at the halfway mark of its season.
type Snapshot struct {
	Team string
	// MatchesToMid is floor(total/2) and also the index of the first
	// second-half match, where a progression starts.
	MatchesToMid   int
	DrawPct        float64
	WinPct         float64
	LossPct        float64
	UnbeatenStreak int
}

func (s Snapshot) StartIndex() int { return s.MatchesToMid }

// Build computes the halfway snapshot from a team's chronological season.
// ok is false when the first half is empty (fewer than two matches).
func Build(team string, season []match.Match) (Snapshot, bool) {
	half := len(season) / 2
	if half == 0 {
		return Snapshot{}, false
	}
	first := season[:half]

	var draws, wins, losses int
	for _, m := range first {
		switch {
		case m.IsDraw():
			draws++
		case m.WonBy(team):
			wins++
		case m.LostBy(team):
			losses++
		}
	}

	unbeaten := 0
	for i := len(first) - 1; i >= 0; i-- {
		if first[i].LostBy(team) {
			break
		}
		unbeaten++
	}

	n := float64(half)
	return Snapshot{
		Team:           team,
		MatchesToMid:   half,
		DrawPct:        100 * float64(draws) / n,
		WinPct:         100 * float64(wins) / n,
		LossPct:        100 * float64(losses) / n,
		UnbeatenStreak: unbeaten,
	}, true
}

// BuildAll snapshots every team in teams order, skipping teams with an
// empty first half. histories maps team → chronological season matches.
func BuildAll(teams []string, histories map[string][]match.Match) []Snapshot {
	snaps := make([]Snapshot, 0, len(teams))
	for _, team := range teams {
		if s, ok := Build(team, histories[team]); ok {
			snaps = append(snaps, s)
		}
	}
	return snaps
}
