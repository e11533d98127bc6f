package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A fixed clock keeps the century pivot deterministic: 24 + 2 = 26.
var yearTestNow = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestCenturyPivot(t *testing.T) {
	assert.Equal(t, 26, centuryPivot(yearTestNow))
	assert.Equal(t, 2, centuryPivot(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseYearAt_TwoDigitPivot(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"05", 2005},
		{"5", 2005},
		{"26", 2026},
		{"27", 1927},
		{"99", 1999},
		{"00", 2000},
	}
	for _, tt := range tests {
		got, ok := parseYearAt(tt.token, yearTestNow)
		assert.True(t, ok, "parseYearAt(%q)", tt.token)
		assert.Equal(t, tt.want, got, "parseYearAt(%q)", tt.token)
	}
}

func TestParseYearAt_FourDigitFaceValue(t *testing.T) {
	got, ok := parseYearAt("1998", yearTestNow)
	assert.True(t, ok)
	assert.Equal(t, 1998, got)

	// No bounds check on 4-character tokens.
	got, ok = parseYearAt("9999", yearTestNow)
	assert.True(t, ok)
	assert.Equal(t, 9999, got)
}

func TestParseYearAt_Rejects(t *testing.T) {
	for _, token := range []string{"", "   ", "abc", "123", "20155"} {
		_, ok := parseYearAt(token, yearTestNow)
		assert.False(t, ok, "parseYearAt(%q)", token)
	}
}

func TestParseYearRangeAt(t *testing.T) {
	lo, hi, ok := parseYearRangeAt("05-25", yearTestNow)
	assert.True(t, ok)
	assert.Equal(t, 2005, lo)
	assert.Equal(t, 2025, hi)

	lo, hi, ok = parseYearRangeAt("1998/2004", yearTestNow)
	assert.True(t, ok)
	assert.Equal(t, 1998, lo)
	assert.Equal(t, 2004, hi)

	// The pair comes back unordered; callers swap.
	lo, hi, ok = parseYearRangeAt("25 05", yearTestNow)
	assert.True(t, ok)
	assert.Equal(t, 2025, lo)
	assert.Equal(t, 2005, hi)
}

func TestParseYearRangeAt_Rejects(t *testing.T) {
	for _, text := range []string{"2015", "05-", "-25", "05-abc", ""} {
		_, _, ok := parseYearRangeAt(text, yearTestNow)
		assert.False(t, ok, "parseYearRangeAt(%q)", text)
	}
}

func TestYearMatchesAt_EmptyQueryMatchesAll(t *testing.T) {
	assert.True(t, yearMatchesAt("2015", "", yearTestNow))
	assert.True(t, yearMatchesAt("", "", yearTestNow))
}

func TestYearMatchesAt_RawSubstringShortCircuit(t *testing.T) {
	assert.True(t, yearMatchesAt("05-25", "05", yearTestNow))
	assert.True(t, yearMatchesAt("2015", "2015", yearTestNow))
}

func TestYearMatchesAt_RangeContainment(t *testing.T) {
	assert.True(t, yearMatchesAt("05-25", "2010", yearTestNow))
	assert.True(t, yearMatchesAt("25-05", "2010", yearTestNow))
	assert.False(t, yearMatchesAt("05-25", "1998", yearTestNow))
	assert.True(t, yearMatchesAt("98/04", "2001", yearTestNow))
}

func TestYearMatchesAt_ExactParsedYear(t *testing.T) {
	assert.True(t, yearMatchesAt("15", "2015", yearTestNow))
	assert.True(t, yearMatchesAt("2015", "15", yearTestNow))
	assert.False(t, yearMatchesAt("2016", "2015", yearTestNow))
}

func TestYearMatchesAt_UnparsableQueryFallsBackToContainment(t *testing.T) {
	// Query does not parse as a year; only raw cross-containment remains.
	assert.True(t, yearMatchesAt("2015", "2015 model", yearTestNow))
	assert.False(t, yearMatchesAt("", "2015 model", yearTestNow))
	assert.False(t, yearMatchesAt("2016", "2015 model", yearTestNow))
}

func TestYearMatchesAt_UnparsableApplicationYear(t *testing.T) {
	assert.False(t, yearMatchesAt("all years", "2015", yearTestNow))
}
