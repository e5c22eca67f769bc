package progression

import "github.com/shopspring/decimal"

// Tally accumulates progression results, e.g. per scenario.
type Tally struct {
	Runs       int
	Wins       int
	Losses     int
	Capped     int
	ProfitLoss decimal.Decimal
	MaxCapital int64
}

func (t *Tally) Add(r Result) {
	t.Runs++
	switch r.State {
	case Win:
		t.Wins++
	case Loss:
		t.Losses++
	}
	if r.Capped {
		t.Capped++
	}
	t.ProfitLoss = t.ProfitLoss.Add(r.ProfitLoss)
	if r.MaxCapital > t.MaxCapital {
		t.MaxCapital = r.MaxCapital
	}
}

func (t Tally) WinRate() float64 {
	if t.Runs == 0 {
		return 0
	}
	return 100 * float64(t.Wins) / float64(t.Runs)
}

func (t Tally) AvgProfitLoss() decimal.Decimal {
	if t.Runs == 0 {
		return decimal.Zero
	}
	return t.ProfitLoss.Div(decimal.NewFromInt(int64(t.Runs)))
}
