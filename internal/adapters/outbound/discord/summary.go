package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/charleschow/draw-progression/internal/core/league"
)

const (
	ColorGreen  = 0x2ECC71
	ColorRed    = 0xE74C3C
	ColorYellow = 0xF1C40F
)

// RunSummary posts one embed with the per-scenario totals of a run.
// Green when every scenario is in profit, red when none is.
func (n *Notifier) RunSummary(ctx context.Context, runID string, r *league.Report) error {
	var (
		fields     []Field
		profitable int
	)
	for _, s := range r.Summaries {
		if s.ProfitLoss.IsPositive() {
			profitable++
		}
		fields = append(fields, Field{
			Name: s.Scenario.String(),
			Value: fmt.Sprintf("%d runs  %d W / %d L\nP&L %s  avg %s  max stake %d",
				s.Runs, s.Wins, s.Losses,
				s.ProfitLoss.StringFixed(2), s.AvgProfitLoss().StringFixed(2), s.MaxCapital),
			Inline: true,
		})
	}

	color := ColorYellow
	switch profitable {
	case len(r.Summaries):
		color = ColorGreen
	case 0:
		color = ColorRed
	}

	desc := fmt.Sprintf("%d leagues  %d team records  %d progressions  %d warnings",
		r.Leagues, len(r.Stats), len(r.Progressions), len(r.Warnings))
	if skipped := countSkips(r.Warnings); skipped > 0 {
		desc += fmt.Sprintf("\n%d units skipped", skipped)
	}

	return n.SendEmbed(ctx, Embed{
		Title:       fmt.Sprintf("Draw progression run %s", shortID(runID)),
		Description: desc,
		Color:       color,
		Fields:      fields,
	})
}

func countSkips(ws []league.Warning) int {
	var n int
	for _, w := range ws {
		switch w.Kind {
		case league.WarnMissingInput, league.WarnLoadFailed, league.WarnInsufficientHistory:
			n++
		}
	}
	return n
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
