package match

import "errors"

// Data-quality taxonomy. Per-unit problems wrap one of these and are
// reported as warnings; none of them aborts a batch run.
var (
	ErrMissingInput        = errors.New("no match data for league/season")
	ErrMalformedRow        = errors.New("malformed match row")
	ErrUnparseableDate     = errors.New("unparseable match date")
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrMalformedSeason     = errors.New("malformed season label")
)
