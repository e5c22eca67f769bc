package match

// Quality counts rows a provider read, dropped (Malformed) or kept without
// a usable date (Undated) for one season file.
type Quality struct {
	Rows      int
	Malformed int
	Undated   int
}
