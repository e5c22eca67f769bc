package footballdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/core/teamname"
	"golang.org/x/text/encoding/charmap"
)

// Required columns in football-data.co.uk result files.
const (
	colDate   = "Date"
	colHome   = "HomeTeam"
	colAway   = "AwayTeam"
	colResult = "FTR"
)

// Older seasons use two-digit years.
var dateLayouts = []string{"02/01/2006", "02/01/06", "2/1/2006", "2/1/06"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadReport counts rows that were dropped or degraded while parsing.
type LoadReport struct {
	match.Quality
	// Latin1 is set when the file was not valid UTF-8 and was decoded as ISO-8859-1.
	Latin1 bool
}

// Parse reads a football-data results file. Rows with an unknown FTR code
// or a missing team name are excluded and counted; rows whose date cannot
// be parsed are kept with HasDate false.
func Parse(raw []byte, season string, aliases map[string]string) ([]match.Match, LoadReport, error) {
	var report LoadReport

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, report, fmt.Errorf("decode latin-1: %w", err)
		}
		raw = decoded
		report.Latin1 = true
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, fmt.Errorf("%w: empty file", match.ErrMissingInput)
	}
	if err != nil {
		return nil, report, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{colHome, colAway, colResult} {
		if _, ok := idx[col]; !ok {
			return nil, report, fmt.Errorf("%w: missing column %s", match.ErrMalformedRow, col)
		}
	}
	dateCol, hasDateCol := idx[colDate]

	var out []match.Match
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("read row %d: %w", report.Rows+1, err)
		}
		if blank(row) {
			continue
		}
		report.Rows++

		m, ok := parseRow(row, idx)
		if !ok {
			report.Malformed++
			continue
		}
		m.Season = season
		m.Home = teamname.Canonical(m.Home, aliases)
		m.Away = teamname.Canonical(m.Away, aliases)
		if hasDateCol && dateCol < len(row) {
			m.Date, m.HasDate = parseDate(row[dateCol])
		}
		if !m.HasDate {
			report.Undated++
		}
		out = append(out, m)
	}
	return out, report, nil
}

func parseRow(row []string, idx map[string]int) (match.Match, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	home, away := field(colHome), field(colAway)
	if home == "" || away == "" {
		return match.Match{}, false
	}
	res, err := match.ParseResult(field(colResult))
	if err != nil {
		return match.Match{}, false
	}
	return match.Match{Home: home, Away: away, Result: res}, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
