package filter

import (
	"strings"
	"sync"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

// TextCache memoizes each item's searchable text blob, keyed by item object
// identity. A refreshed snapshot carries new item values, so stale entries
// are never served; recomputing concurrently is a benign race because the
// result is deterministic for a given item.
type TextCache struct {
	entries sync.Map // *api.CatalogItem -> string
}

// NewTextCache creates an empty searchable-text cache.
func NewTextCache() *TextCache {
	return &TextCache{}
}

// SearchableText returns the normalized, space-joined concatenation of all
// text fields eligible for free-text search, computing and caching it on
// first use.
func (c *TextCache) SearchableText(item *api.CatalogItem) string {
	if cached, ok := c.entries.Load(item); ok {
		return cached.(string)
	}
	text := buildSearchableText(item)
	c.entries.Store(item, text)
	return text
}

// MatchesQuery reports whether every whitespace-separated term of the query
// appears somewhere in the item's searchable text. Substring containment,
// not tokenization: "bra" matches "brake". An empty query matches all.
func (c *TextCache) MatchesQuery(item *api.CatalogItem, rawQuery string) bool {
	terms := strings.Fields(Normalize(rawQuery))
	if len(terms) == 0 {
		return true
	}
	text := c.SearchableText(item)
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

func buildSearchableText(item *api.CatalogItem) string {
	parts := make([]string, 0, 8+4*len(item.Applications))
	add := func(raw string) {
		if n := Normalize(raw); n != "" {
			parts = append(parts, n)
		}
	}

	add(item.PrimaryRef)
	for _, ref := range item.AlternateRefs {
		add(ref)
	}
	for _, code := range item.OEMCodes {
		add(code)
	}
	for _, code := range item.FMSICodes {
		add(code)
	}
	add(item.WvaCode)
	add(item.Manufacturer)
	for _, app := range item.Applications {
		add(app.Brand)
		add(app.Model)
		add(app.Series)
		add(app.Year)
	}

	return strings.Join(parts, " ")
}
