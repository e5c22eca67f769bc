package midseason

import (
	"testing"
	"time"

	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// season builds a chronological season for team from a pattern of W/D/L,
// alternating home and away so both sides of the win/loss logic are used.
func season(team, pattern string) []match.Match {
	start := time.Date(2023, time.August, 12, 0, 0, 0, 0, time.UTC)
	out := make([]match.Match, 0, len(pattern))
	for i, c := range pattern {
		home := i%2 == 0
		m := match.Match{Date: start.AddDate(0, 0, 7*i), HasDate: true, Season: "2023-2024"}
		if home {
			m.Home, m.Away = team, "Opp"
		} else {
			m.Home, m.Away = "Opp", team
		}
		switch {
		case c == 'D':
			m.Result = match.Draw
		case (c == 'W') == home:
			m.Result = match.Home
		default:
			m.Result = match.Away
		}
		out = append(out, m)
	}
	return out
}

func TestBuildTenMatchSeason(t *testing.T) {
	// first half: W D L W D
	s, ok := Build("T", season("T", "WDLWDLLLLL"))
	require.True(t, ok)

	assert.Equal(t, 5, s.MatchesToMid)
	assert.Equal(t, 5, s.StartIndex())
	assert.InDelta(t, 40.0, s.DrawPct, 1e-9)
	assert.InDelta(t, 40.0, s.WinPct, 1e-9)
	assert.InDelta(t, 20.0, s.LossPct, 1e-9)
	assert.Equal(t, 2, s.UnbeatenStreak)
}

func TestBuildExcludesEmptyFirstHalf(t *testing.T) {
	_, ok := Build("T", season("T", "W"))
	assert.False(t, ok)
	_, ok = Build("T", nil)
	assert.False(t, ok)

	s, ok := Build("T", season("T", "WL"))
	require.True(t, ok)
	assert.Equal(t, 1, s.MatchesToMid)
}

func TestBuildOddLengthSeasonFloorsMidpoint(t *testing.T) {
	s, ok := Build("T", season("T", "DDDWWWW"))
	require.True(t, ok)
	assert.Equal(t, 3, s.MatchesToMid)
	assert.Equal(t, 100.0, s.DrawPct)
}

func TestUnbeatenStreakStopsAtFirstLoss(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"LLLLLLLLLL", 0},
		{"WWWWWLLLLL", 5},
		{"LWDWDLLLLL", 4},
		{"WWWWLWWWWW", 0},
		{"WLDDDLLLLL", 3},
	}
	for _, tt := range tests {
		s, ok := Build("T", season("T", tt.pattern))
		require.True(t, ok, tt.pattern)
		assert.Equal(t, tt.want, s.UnbeatenStreak, tt.pattern)
	}
}

func TestBuildAllSkipsShortHistories(t *testing.T) {
	histories := map[string][]match.Match{
		"A": season("A", "WWDD"),
		"B": season("B", "W"),
		"C": season("C", "LL"),
	}
	snaps := BuildAll([]string{"A", "B", "C", "Missing"}, histories)
	require.Len(t, snaps, 2)
	assert.Equal(t, "A", snaps[0].Team)
	assert.Equal(t, "C", snaps[1].Team)
}

func TestRankScenarios(t *testing.T) {
	snaps := []Snapshot{
		{Team: "A", DrawPct: 30, WinPct: 40, LossPct: 30, UnbeatenStreak: 1},
		{Team: "B", DrawPct: 10, WinPct: 70, LossPct: 20, UnbeatenStreak: 6},
		{Team: "C", DrawPct: 20, WinPct: 10, LossPct: 70, UnbeatenStreak: 0},
		{Team: "D", DrawPct: 10, WinPct: 50, LossPct: 40, UnbeatenStreak: 6},
		{Team: "E", DrawPct: 50, WinPct: 30, LossPct: 20, UnbeatenStreak: 3},
	}

	tests := []struct {
		scenario Scenario
		want     []string
	}{
		{LowestDrawPct, []string{"B", "D", "C"}},
		{LongestUnbeaten, []string{"B", "D", "E"}},
		{HighestLossPct, []string{"C", "D", "A"}},
		{HighestWinPct, []string{"B", "D", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.scenario.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, teams(Rank(snaps, tt.scenario, 3)))
		})
	}

	// input order untouched
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, teams(snaps))
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	snaps := []Snapshot{
		{Team: "Z", DrawPct: 25},
		{Team: "Y", DrawPct: 25},
		{Team: "X", DrawPct: 25},
		{Team: "W", DrawPct: 25},
	}
	assert.Equal(t, []string{"Z", "Y", "X"}, teams(Rank(snaps, LowestDrawPct, 3)))
	assert.Equal(t, []string{"Z", "Y", "X"}, teams(Rank(snaps, HighestWinPct, 3)))
}

func TestRankIsIdempotent(t *testing.T) {
	histories := map[string][]match.Match{
		"A": season("A", "WDLWDLWDLW"),
		"B": season("B", "LLWWDDLLWW"),
		"C": season("C", "DDDDLLLLWW"),
		"D": season("D", "WWWWWDDDDD"),
	}
	order := []string{"A", "B", "C", "D"}
	for _, sc := range Scenarios {
		first := Rank(BuildAll(order, histories), sc, 3)
		second := Rank(BuildAll(order, histories), sc, 3)
		assert.Equal(t, first, second, sc.String())
	}
}

func TestRankFewerThanN(t *testing.T) {
	snaps := []Snapshot{{Team: "A"}}
	assert.Len(t, Rank(snaps, HighestLossPct, 3), 1)
	assert.Empty(t, Rank(nil, HighestLossPct, 3))
}

func teams(snaps []Snapshot) []string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.Team
	}
	return out
}
