package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerPhrases are folded strings that show up in plate columns when a
// banner or repeated header row leaks into the data region.
var headerPhrases = map[string]bool{
	"bien so xe":    true,
	"bien so":       true,
	"plate number":  true,
	"license plate": true,
}

// NormalizePlate collapses cosmetically different renderings of the same
// license plate onto one key: everything except letters and digits is
// stripped and the remainder upper-cased, so "51F-123.45" and "51F12345"
// normalize identically. The operation is idempotent.
func NormalizePlate(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// PlausiblePlate reports whether a raw cell value looks like an actual
// plate rather than a stray date, banner fragment or header echo.
func PlausiblePlate(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(trimmed)
	if n < 5 || n > 15 {
		return false
	}
	if strings.Contains(trimmed, ":") {
		return false
	}
	// A "202x" fragment means a year slipped into the column.
	if strings.Contains(trimmed, "202") {
		return false
	}
	if headerPhrases[FoldText(trimmed)] {
		return false
	}
	return true
}
