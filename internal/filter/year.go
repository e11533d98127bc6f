package filter

import (
	"strconv"
	"strings"
	"time"
)

// centuryPivot is the two-digit cutoff for mapping short year tokens onto a
// century. The +2 gives a small lookahead window so next year's model years
// land in the 2000s. Kept as-is; changing it changes existing search results.
func centuryPivot(now time.Time) int {
	return now.Year()%100 + 2
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseYear interprets a 2- or 4-digit year token. A 4-character token is
// taken at face value with no bounds check; a token of up to 2 characters is
// mapped onto a century via the pivot. Anything else does not parse.
func ParseYear(token string) (int, bool) {
	return parseYearAt(token, time.Now())
}

func parseYearAt(token string, now time.Time) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	v, ok := leadingInt(token)
	if !ok {
		return 0, false
	}

	switch {
	case len(token) == 4:
		return v, true
	case len(token) <= 2:
		if v <= centuryPivot(now) {
			return 2000 + v, true
		}
		return 1900 + v, true
	default:
		return 0, false
	}
}

func yearRangeSeparator(r rune) bool {
	return r == '-' || r == '/' || r == ' ' || r == '\t'
}

// ParseYearRange interprets dash/slash/whitespace-separated year ranges like
// "05-25" or "1998/2004". Both endpoints must parse; open-ended ranges are
// not supported. The pair is returned unordered.
func ParseYearRange(text string) (int, int, bool) {
	return parseYearRangeAt(text, time.Now())
}

func parseYearRangeAt(text string, now time.Time) (int, int, bool) {
	tokens := strings.FieldsFunc(text, yearRangeSeparator)
	if len(tokens) < 2 {
		return 0, 0, false
	}

	first, ok := parseYearAt(tokens[0], now)
	if !ok {
		return 0, 0, false
	}
	second, ok := parseYearAt(tokens[1], now)
	if !ok {
		return 0, 0, false
	}
	return first, second, true
}

// YearMatches tests an application's free-form year text against a query.
// Editors enter both clean and messy data, so matching degrades stepwise:
// raw substring containment, parsed range containment, exact parsed year,
// and finally raw cross-containment when the query itself does not parse.
func YearMatches(applicationYear, query string) bool {
	return yearMatchesAt(applicationYear, query, time.Now())
}

func yearMatchesAt(applicationYear, query string, now time.Time) bool {
	app := strings.TrimSpace(applicationYear)
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}

	if strings.Contains(app, q) {
		return true
	}

	queryYear, ok := parseYearAt(q, now)
	if !ok {
		return strings.Contains(q, app) && app != ""
	}

	if lo, hi, ok := parseYearRangeAt(app, now); ok {
		if lo > hi {
			lo, hi = hi, lo
		}
		return queryYear >= lo && queryYear <= hi
	}
	if appYear, ok := parseYearAt(app, now); ok {
		return appYear == queryYear
	}
	return false
}
