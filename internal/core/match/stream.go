package match

import "sort"

// SortByDate orders matches ascending by date in place. The sort is
// stable: matches on the same date keep their input order, and undated
// matches are moved after all dated ones, keeping their input order.
func SortByDate(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		if !a.HasDate {
			return false
		}
		return a.Date.Before(b.Date)
	})
}

// ForTeam returns a new slice with the matches team played, home or away,
// in chronological order. The input is not modified.
func ForTeam(matches []Match, team string) []Match {
	var out []Match
	for _, m := range matches {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	SortByDate(out)
	return out
}

// Teams returns every team appearing in matches in first-appearance order,
// home side before away side within a row.
func Teams(matches []Match) []string {
	seen := make(map[string]struct{})
	var teams []string
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		teams = append(teams, t)
	}
	for _, m := range matches {
		add(m.Home)
		add(m.Away)
	}
	return teams
}

// BySeason groups matches by season label, preserving order within each
// group. The second return lists labels in first-appearance order.
func BySeason(matches []Match) (map[string][]Match, []string) {
	groups := make(map[string][]Match)
	var order []string
	for _, m := range matches {
		if _, ok := groups[m.Season]; !ok {
			order = append(order, m.Season)
		}
		groups[m.Season] = append(groups[m.Season], m)
	}
	return groups, order
}

// Played filters matches to those team played, keeping the input order.
// Use it on streams that are already sorted.
func Played(matches []Match, team string) []Match {
	var out []Match
	for _, m := range matches {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	return out
}
