package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes free text for comparison: lower-case, strip
// combining diacritical marks, trim surrounding whitespace. Total; empty
// input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldTransform, s); err == nil {
		s = folded
	}
	return strings.TrimSpace(s)
}

// ContainsNormalized reports whether needle appears as a substring of
// haystack after both are normalized. An empty needle always matches.
func ContainsNormalized(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// EqualNormalized reports whether two strings are equal after normalization.
func EqualNormalized(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
