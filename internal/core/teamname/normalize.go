package teamname

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key lowercases, strips diacritics and collapses whitespace. Two names
// with the same key refer to the same club.
func Key(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	return strings.ToLower(collapseWhitespace(s))
}

// Canonical returns the display name used throughout a run: diacritics
// stripped, whitespace collapsed, then resolved through aliases by key.
// Case is otherwise preserved.
func Canonical(s string, aliases map[string]string) string {
	if s == "" {
		return ""
	}
	display := collapseWhitespace(stripDiacritics(s))
	if canonical, ok := aliases[Key(display)]; ok {
		return canonical
	}
	return display
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
