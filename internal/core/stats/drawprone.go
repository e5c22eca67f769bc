package stats

import "sort"

// TopDrawProne returns the n records with the highest draw % among those
// with at least minMatches matches. Ties keep their input order. n <= 0
// returns every qualifying record. The input slice is not modified.
func TopDrawProne[T any](records []T, n, minMatches int, get func(T) TeamStats) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if get(r).TotalMatches >= minMatches {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return get(out[i]).DrawPct > get(out[j]).DrawPct
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
