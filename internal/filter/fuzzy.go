package filter

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

// Field weights for relevance ranking. Part numbers dominate: a query is far
// more likely to be a reference than a vehicle name.
const (
	weightPrimaryRef   = 3.0
	weightCodes        = 2.5
	weightBrand        = 1.0
	weightModelSeries  = 0.8
	weightYear         = 0.5
	weightManufacturer = 0.5
)

type fieldGroup struct {
	weight float64
	values []string
}

// FuzzySearch ranks items against a free-text query by weighted multi-field
// approximate matching, best first. Items with no match in any field are
// dropped. This is the explicit relevance-ranked path; the boolean query
// facet of the pipeline is separate and stricter about term containment.
// An empty query returns the input unchanged.
func FuzzySearch(items []api.CatalogItem, query string) []api.CatalogItem {
	q := Normalize(query)
	if q == "" {
		return items
	}

	type ranked struct {
		index int
		score float64
	}
	var hits []ranked

	for i := range items {
		score, matched := fuzzyItemScore(&items[i], q)
		if matched {
			hits = append(hits, ranked{index: i, score: score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	result := make([]api.CatalogItem, 0, len(hits))
	for _, h := range hits {
		result = append(result, items[h.index])
	}
	return result
}

func fuzzyItemScore(item *api.CatalogItem, normalizedQuery string) (float64, bool) {
	groups := itemFieldGroups(item)

	total := 0.0
	matched := false
	for _, g := range groups {
		best, ok := bestFieldMatch(normalizedQuery, g.values)
		if !ok {
			continue
		}
		matched = true
		total += g.weight * float64(best)
	}
	return total, matched
}

// bestFieldMatch returns the strongest match score of the query across the
// field values. The underlying matcher requires every query character to
// appear in order, so a single altered digit in a part number rejects the
// whole field rather than fuzzing past it.
func bestFieldMatch(normalizedQuery string, values []string) (int, bool) {
	matches := fuzzy.Find(normalizedQuery, values)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

func itemFieldGroups(item *api.CatalogItem) []fieldGroup {
	codes := make([]string, 0, 1+len(item.AlternateRefs)+len(item.OEMCodes)+len(item.FMSICodes))
	codes = appendNormalized(codes, item.AlternateRefs...)
	codes = appendNormalized(codes, item.OEMCodes...)
	codes = appendNormalized(codes, item.FMSICodes...)
	codes = appendNormalized(codes, item.WvaCode)

	var brands, models, years []string
	for _, app := range item.Applications {
		brands = appendNormalized(brands, app.Brand)
		models = appendNormalized(models, app.Model, app.Series)
		years = appendNormalized(years, app.Year)
	}

	return []fieldGroup{
		{weight: weightPrimaryRef, values: appendNormalized(nil, item.PrimaryRef)},
		{weight: weightCodes, values: codes},
		{weight: weightBrand, values: brands},
		{weight: weightModelSeries, values: models},
		{weight: weightYear, values: years},
		{weight: weightManufacturer, values: appendNormalized(nil, item.Manufacturer)},
	}
}

func appendNormalized(dst []string, values ...string) []string {
	for _, v := range values {
		if n := Normalize(v); n != "" {
			dst = append(dst, n)
		}
	}
	return dst
}
