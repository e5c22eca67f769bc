package match

import (
	"fmt"
	"strings"
	"time"
)

// Result is the full-time result code as published by football-data.co.uk.
type Result byte

const (
	Home Result = 'H'
	Away Result = 'A'
	Draw Result = 'D'
)

func ParseResult(s string) (Result, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H":
		return Home, nil
	case "A":
		return Away, nil
	case "D":
		return Draw, nil
	}
	return 0, fmt.Errorf("%w: result code %q", ErrMalformedRow, s)
}

func (r Result) String() string {
	switch r {
	case Home, Away, Draw:
		return string(r)
	}
	return "?"
}

// Match is one played fixture. HasDate is false when the source date
// could not be parsed; such matches sort after every dated match.
type Match struct {
	Date    time.Time
	HasDate bool
	Home    string
	Away    string
	Result  Result
	Season  string
}

func (m Match) IsDraw() bool { return m.Result == Draw }

// Involves reports whether team played in m.
func (m Match) Involves(team string) bool {
	return m.Home == team || m.Away == team
}

// WonBy reports whether team won m. False when team did not play.
func (m Match) WonBy(team string) bool {
	return (m.Home == team && m.Result == Home) || (m.Away == team && m.Result == Away)
}

// LostBy reports whether team lost m. False when team did not play.
func (m Match) LostBy(team string) bool {
	return (m.Home == team && m.Result == Away) || (m.Away == team && m.Result == Home)
}

func (m Match) String() string {
	d := "????-??-??"
	if m.HasDate {
		d = m.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s %s v %s %s", d, m.Home, m.Away, m.Result)
}
