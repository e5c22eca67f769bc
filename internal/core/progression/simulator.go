package progression

import (
	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/shopspring/decimal"
)

type State int

const (
	InProgress State = iota
	Win
	Loss
)

func (s State) String() string {
	switch s {
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	}
	return "InProgress"
}

// Result is the terminal state of one progression.
type Result struct {
	State      State
	Matches    int
	ProfitLoss decimal.Decimal
	MaxCapital int64
	// Capped is set when the max-steps guard ended the progression.
	Capped bool
}

// Simulator replays a Fibonacci-style progression backing the draw.
// It holds only immutable configuration and is safe for concurrent use.
type Simulator struct {
	stakes   []int64
	odds     decimal.Decimal
	maxSteps int
}

// NewSimulator validates the staking configuration. maxSteps <= 0 disables
// the step guard: once the sequence runs out the last stake repeats until
// a draw or the end of the stream.
func NewSimulator(stakes []int64, drawOdds float64, maxSteps int) (*Simulator, error) {
	if err := ValidateStaking(stakes, drawOdds); err != nil {
		return nil, err
	}
	return &Simulator{
		stakes:   append([]int64(nil), stakes...),
		odds:     decimal.NewFromFloat(drawOdds),
		maxSteps: maxSteps,
	}, nil
}

func (s *Simulator) stake(idx int) int64 {
	if idx >= len(s.stakes) {
		return s.stakes[len(s.stakes)-1]
	}
	return s.stakes[idx]
}

// Run stakes on a draw in every match until one comes in.
func (s *Simulator) Run(matches []match.Match) Result {
	var (
		idx    int
		spent  int64
		maxCap int64
		played int
	)
	for _, m := range matches {
		if s.maxSteps > 0 && played >= s.maxSteps {
			return Result{
				State:      Loss,
				Matches:    played,
				ProfitLoss: decimal.NewFromInt(-spent),
				MaxCapital: maxCap,
				Capped:     true,
			}
		}
		played++

		stake := s.stake(idx)
		spent += stake
		if stake > maxCap {
			maxCap = stake
		}

		if m.IsDraw() {
			winnings := decimal.NewFromInt(stake).Mul(s.odds.Sub(decimal.NewFromInt(1)))
			return Result{
				State:      Win,
				Matches:    played,
				ProfitLoss: winnings.Sub(decimal.NewFromInt(spent - stake)),
				MaxCapital: maxCap,
			}
		}
		idx++
	}

	return Result{
		State:      Loss,
		Matches:    played,
		ProfitLoss: decimal.NewFromInt(-spent),
		MaxCapital: maxCap,
	}
}
