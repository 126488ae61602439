package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// FoldText lowercases a string, strips Vietnamese diacritics and collapses
// all whitespace runs (including embedded newlines from wrapped header
// cells) into single spaces. Matching against the header and keyword
// tables always goes through this fold, so "Biển số\nxe" and "bien so xe"
// compare equal.
func FoldText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	s = stripDiacritics(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics removes combining marks after NFD decomposition.
// The đ/Đ pair does not decompose, so it is mapped by hand.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
