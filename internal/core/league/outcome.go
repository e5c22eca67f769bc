package league

import (
	"fmt"
	"strings"
)

// Unit identifies one piece of work. Empty fields are left out of String.
type Unit struct {
	Country string
	League  string
	Season  string
	Team    string
}

func (u Unit) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Country, u.League, u.Season, u.Team} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

type WarningKind string

const (
	WarnMissingInput        WarningKind = "missing_input"
	WarnLoadFailed          WarningKind = "load_failed"
	WarnMalformedRows       WarningKind = "malformed_rows"
	WarnUndatedRows         WarningKind = "undated_rows"
	WarnMalformedSeason     WarningKind = "malformed_season"
	WarnInsufficientHistory WarningKind = "insufficient_history"
)

// Warning is one itemised skip or data-quality note in a run report.
type Warning struct {
	Kind   WarningKind
	Unit   Unit
	Detail string
	Count  int
}

func (w Warning) String() string {
	s := fmt.Sprintf("%s %s: %s", w.Kind, w.Unit, w.Detail)
	if w.Count > 0 {
		s += fmt.Sprintf(" (%d)", w.Count)
	}
	return s
}

// Outcome is the result of one unit: either a value or the warning that
// explains why the unit was skipped.
type Outcome[T any] struct {
	Value T
	Skip  *Warning
}

func Done[T any](v T) Outcome[T] { return Outcome[T]{Value: v} }

func Skipped[T any](w Warning) Outcome[T] { return Outcome[T]{Skip: &w} }

func (o Outcome[T]) Ok() bool { return o.Skip == nil }
