package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func self(ts TeamStats) TeamStats { return ts }

func TestTopDrawProne(t *testing.T) {
	records := []TeamStats{
		{Team: "A", TotalMatches: 40, DrawPct: 25},
		{Team: "B", TotalMatches: 29, DrawPct: 60},
		{Team: "C", TotalMatches: 30, DrawPct: 35},
		{Team: "D", TotalMatches: 50, DrawPct: 25},
		{Team: "E", TotalMatches: 38, DrawPct: 30},
	}

	tests := []struct {
		name       string
		n          int
		minMatches int
		want       []string
	}{
		{"threshold is inclusive", 0, 30, []string{"C", "E", "A", "D"}},
		{"ties keep input order", 0, 40, []string{"A", "D"}},
		{"truncates to n", 2, 30, []string{"C", "E"}},
		{"n larger than pool", 10, 30, []string{"C", "E", "A", "D"}},
		{"no minimum", 1, 0, []string{"B"}},
		{"nothing qualifies", 5, 100, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TopDrawProne(records, tc.n, tc.minMatches, self)
			order := []string{}
			for _, r := range got {
				order = append(order, r.Team)
			}
			assert.Equal(t, tc.want, order)
		})
	}

	assert.Equal(t, "A", records[0].Team, "input untouched")
	assert.Equal(t, "B", records[1].Team, "input untouched")
}
