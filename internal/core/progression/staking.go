package progression

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyStaking = errors.New("staking sequence is empty")
	ErrInvalidStake = errors.New("stake must be positive")
	ErrInvalidOdds  = errors.New("draw odds must be positive and finite")
)

// Fibonacci returns the first n terms of 1, 1, 2, 3, 5, ...
func Fibonacci(n int) []int64 {
	if n <= 0 {
		return nil
	}
	seq := make([]int64, n)
	for i := range seq {
		if i < 2 {
			seq[i] = 1
			continue
		}
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq
}

// ValidateStaking rejects configurations no simulation can run with.
func ValidateStaking(stakes []int64, drawOdds float64) error {
	if len(stakes) == 0 {
		return ErrEmptyStaking
	}
	for i, s := range stakes {
		if s <= 0 {
			return fmt.Errorf("%w: stakes[%d] = %d", ErrInvalidStake, i, s)
		}
	}
	if !(drawOdds > 0) || math.IsInf(drawOdds, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidOdds, drawOdds)
	}
	return nil
}
