package midseason

import "sort"

type Scenario int

const (
	LowestDrawPct Scenario = iota
	LongestUnbeaten
	HighestLossPct
	HighestWinPct
)

// Scenarios lists every ranking in reporting order.
var Scenarios = []Scenario{LowestDrawPct, LongestUnbeaten, HighestLossPct, HighestWinPct}

func (s Scenario) String() string {
	switch s {
	case LowestDrawPct:
		return "Lowest Draw %"
	case LongestUnbeaten:
		return "Longest Unbeaten Streak"
	case HighestLossPct:
		return "Highest Loss %"
	case HighestWinPct:
		return "Highest Win %"
	}
	return "Unknown"
}

func (s Scenario) less(a, b Snapshot) bool {
	switch s {
	case LowestDrawPct:
		return a.DrawPct < b.DrawPct
	case LongestUnbeaten:
		return a.UnbeatenStreak > b.UnbeatenStreak
	case HighestLossPct:
		return a.LossPct > b.LossPct
	case HighestWinPct:
		return a.WinPct > b.WinPct
	}
	return false
}

// Rank returns the top n snapshots under scenario. The input is not
// modified and ties keep their input order.
func Rank(snaps []Snapshot, scenario Scenario, n int) []Snapshot {
	ranked := make([]Snapshot, len(snaps))
	copy(ranked, snaps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scenario.less(ranked[i], ranked[j])
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
