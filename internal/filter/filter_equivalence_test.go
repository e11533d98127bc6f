package filter_test

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

// equivalenceNow pins the clock so the new-item facet is reproducible.
var equivalenceNow = time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)

// referenceApply restates the pipeline as independent sequential passes over
// exported predicates. Slower and allocation-happy, but obviously correct.
func referenceApply(items []api.CatalogItem, opts filter.Options, ctx *filter.Context) []api.CatalogItem {
	if len(items) == 0 {
		return items
	}
	result := items

	if opts.Query != "" {
		cache := filter.NewTextCache()
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			return cache.MatchesQuery(&i, opts.Query)
		})
	}

	if opts.Brand != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, app := range i.Applications {
				if filter.EqualNormalized(app.Brand, opts.Brand) {
					return true
				}
			}
			return false
		})
	}

	if opts.Model != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, app := range i.Applications {
				if filter.ContainsNormalized(app.Model, opts.Model) || filter.ContainsNormalized(app.Series, opts.Model) {
					return true
				}
			}
			return false
		})
	}

	if opts.Year != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, app := range i.Applications {
				if filter.YearMatches(app.Year, opts.Year) {
					return true
				}
			}
			return false
		})
	}

	if opts.Positions != (filter.PositionSet{}) {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			set := filter.ExpandPosition(i.Position)
			if i.Position == api.PositionUnset {
				for _, app := range i.Applications {
					appSet := filter.ExpandPosition(app.Position)
					set = filter.PositionSet{Front: set.Front || appSet.Front, Rear: set.Rear || appSet.Rear}
				}
			}
			if opts.Positions.Front && !set.Front {
				return false
			}
			if opts.Positions.Rear && !set.Rear {
				return false
			}
			return true
		})
	}

	if opts.OEM != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, code := range i.OEMCodes {
				if filter.ContainsNormalized(code, opts.OEM) {
					return true
				}
			}
			return false
		})
	}

	if opts.FMSI != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, code := range i.FMSICodes {
				if filter.ContainsNormalized(code, opts.FMSI) {
					return true
				}
			}
			return false
		})
	}

	if opts.Width != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			return referenceBand(i.Dimensions.Width, opts.Width)
		})
	}

	if opts.Height != "" {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			return referenceBand(i.Dimensions.Height, opts.Height)
		})
	}

	if len(opts.Tags) > 0 {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			for _, tag := range opts.Tags {
				if filter.ItemHasTag(i, tag) {
					return true
				}
			}
			return false
		})
	}

	if opts.FavoritesOnly {
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			_, ok := ctx.Favorites[i.ID]
			return ok
		})
	}

	if opts.NewOnly {
		now := ctx.Now
		if now.IsZero() {
			now = time.Now()
		}
		result = referenceWhere(result, func(i api.CatalogItem) bool {
			return filter.IsNew(i, now)
		})
	}

	if opts.Query == "" {
		sorted := make([]api.CatalogItem, len(result))
		copy(sorted, result)
		filter.SortByReference(sorted)
		result = sorted
	}

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result
}

// referenceBand restates the ± tolerance band: unparsable query matches all,
// unparsable measurement matches nothing.
func referenceBand(value api.FlexNumber, query string) bool {
	q, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(query), ",", "."), 64)
	if err != nil {
		return true
	}
	v, ok := value.Float()
	if !ok {
		return false
	}
	return math.Abs(v-q) <= 2
}

func referenceWhere(items []api.CatalogItem, fn func(api.CatalogItem) bool) []api.CatalogItem {
	var result []api.CatalogItem
	for _, item := range items {
		if fn(item) {
			result = append(result, item)
		}
	}
	return result
}

func randomItem(rng *rand.Rand, idx int) api.CatalogItem {
	refs := []string{"", "7898BP", "8020INC", "SP1399", "K2313", "455BEX", "D1060", "NODIGITS"}
	brands := []string{"", "Toyota", "Nissan", "Renault", "Chevrolet"}
	models := []string{"Corolla", "Frontier", "Logan", "Spark"}
	series := []string{"", "II", "GT"}
	years := []string{"", "05-25", "98/04", "2015", "all years"}
	positions := []api.Position{api.PositionUnset, api.PositionFront, api.PositionRear, api.PositionBoth}
	oemPools := [][]string{nil, {"04465-02220"}, {"41060-3X90A", "04465-02220"}}
	fmsiPools := [][]string{nil, {"D1060"}, {"D1378"}}
	measures := []api.FlexNumber{"", "101", "103", "131.5", "58,5", "n/a"}
	createdAts := []int64{
		0,
		equivalenceNow.Add(-5 * 24 * time.Hour).UnixMilli(),
		equivalenceNow.Add(-20 * 24 * time.Hour).UnixMilli(),
	}

	appCount := rng.Intn(3)
	apps := make([]api.VehicleApplication, 0, appCount)
	for range appCount {
		apps = append(apps, api.VehicleApplication{
			Brand:    brands[rng.Intn(len(brands))],
			Model:    models[rng.Intn(len(models))],
			Series:   series[rng.Intn(len(series))],
			Year:     years[rng.Intn(len(years))],
			Position: positions[rng.Intn(len(positions))],
		})
	}

	return api.CatalogItem{
		ID:         fmt.Sprintf("id-%d", idx),
		PrimaryRef: refs[rng.Intn(len(refs))],
		OEMCodes:   oemPools[rng.Intn(len(oemPools))],
		FMSICodes:  fmsiPools[rng.Intn(len(fmsiPools))],
		Position:   positions[rng.Intn(len(positions))],
		Dimensions: api.Dimensions{
			Width:  measures[rng.Intn(len(measures))],
			Height: measures[rng.Intn(len(measures))],
		},
		CreatedAt:    createdAts[rng.Intn(len(createdAts))],
		Applications: apps,
	}
}

func randomOptions(rng *rand.Rand) filter.Options {
	brands := []string{"", "toyota", "nissan", "mazda"}
	models := []string{"", "corolla", "ii", "frontier"}
	years := []string{"", "2010", "2001", "15"}
	queries := []string{"", "corolla", "d1060", "toyota spark"}
	tagSets := [][]string{nil, {"incolbest"}, {"bex", "ktc"}, {"sp"}}
	positions := []filter.PositionSet{{}, {Front: true}, {Rear: true}, {Front: true, Rear: true}}
	codes := []string{"", "04465", "3x90a"}
	fmsis := []string{"", "d1060"}
	measures := []string{"", "101", "131.5", "abc"}
	limits := []int{0, 1, 3, 10}

	return filter.Options{
		Query:     queries[rng.Intn(len(queries))],
		Brand:     brands[rng.Intn(len(brands))],
		Model:     models[rng.Intn(len(models))],
		Year:      years[rng.Intn(len(years))],
		Positions: positions[rng.Intn(len(positions))],
		Tags:      tagSets[rng.Intn(len(tagSets))],
		OEM:       codes[rng.Intn(len(codes))],
		FMSI:      fmsis[rng.Intn(len(fmsis))],
		Width:     measures[rng.Intn(len(measures))],
		Height:    measures[rng.Intn(len(measures))],
		NewOnly:   rng.Intn(4) == 0,
		Limit:     limits[rng.Intn(len(limits))],
	}
}

func TestApply_ReferenceEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for caseNum := 0; caseNum < 500; caseNum++ {
		itemCount := rng.Intn(60)
		items := make([]api.CatalogItem, 0, itemCount)
		for i := range itemCount {
			items = append(items, randomItem(rng, i))
		}

		opts := randomOptions(rng)
		ctx := filter.NewContext()
		ctx.Now = equivalenceNow

		got := filter.Apply(items, opts, ctx)
		want := referenceApply(items, opts, ctx)

		assert.Equal(t, want, got, "mismatch for opts=%+v case=%d", opts, caseNum)

		again := filter.Apply(got, opts, ctx)
		assert.Equal(t, got, again, "non-idempotent for opts=%+v case=%d", opts, caseNum)
	}
}

func BenchmarkApply_ReferenceWorkload_1kItems(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	items := make([]api.CatalogItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, randomItem(rng, i))
	}
	opts := filter.Options{
		Brand:     "toyota",
		Year:      "2010",
		Positions: filter.PositionSet{Front: true},
		Limit:     50,
	}
	ctx := filter.NewContext()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = filter.Apply(items, opts, ctx)
	}
}

func TestApply_AllocationBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := make([]api.CatalogItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, randomItem(rng, i))
	}
	opts := filter.Options{
		Brand:     "toyota",
		Year:      "2010",
		Positions: filter.PositionSet{Front: true},
		Limit:     50,
	}
	ctx := filter.NewContext()

	allocs := testing.AllocsPerRun(100, func() {
		_ = filter.Apply(items, opts, ctx)
	})

	// Guardrail against reintroducing per-facet intermediate slices.
	assert.LessOrEqual(t, allocs, 120.0)
}

func BenchmarkApply_SequentialReference_1kItems(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	items := make([]api.CatalogItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, randomItem(rng, i))
	}
	opts := filter.Options{
		Brand:     "toyota",
		Year:      "2010",
		Positions: filter.PositionSet{Front: true},
		Limit:     50,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = referenceApply(items, opts, filter.NewContext())
	}
}
