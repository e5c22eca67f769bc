package match

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// SeasonStartYear returns the leading integer of a season label,
// e.g. "2023-2024" → 2023, "2023/24" → 2023.
func SeasonStartYear(label string) (int, error) {
	s := strings.TrimSpace(label)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSeason, label)
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedSeason, label, err)
	}
	return year, nil
}

// SeasonCode returns the four-digit code used in football-data.co.uk URLs,
// e.g. "2023-2024" → "2324".
func SeasonCode(label string) (string, error) {
	start, err := SeasonStartYear(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d%02d", start%100, (start+1)%100), nil
}
