package filter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

// dimensionTolerance is the ± band in millimeters for width/height matching.
const dimensionTolerance = 2.0

// newItemWindow is how long a reference counts as newly added.
const newItemWindow = 15 * 24 * time.Hour

// Options holds all filter criteria. Every field is independently optional;
// a zero value contributes no constraint.
type Options struct {
	Query         string
	Brand         string
	Model         string
	Year          string
	Positions     PositionSet
	Tags          []string
	OEM           string
	FMSI          string
	Width         string
	Height        string
	FavoritesOnly bool
	NewOnly       bool
	Limit         int
}

// Context carries read-only auxiliary state for a filter pass: the favorites
// id-set, the searchable-text cache, and the clock used by the new-only
// facet. A Context is reusable across passes over the same snapshot.
type Context struct {
	Favorites map[string]struct{}
	Cache     *TextCache
	Now       time.Time
}

// NewContext creates a Context with an empty favorites set and a fresh
// searchable-text cache.
func NewContext() *Context {
	return &Context{Favorites: map[string]struct{}{}, Cache: NewTextCache()}
}

func (c *Context) cache() *TextCache {
	if c.Cache == nil {
		c.Cache = NewTextCache()
	}
	return c.Cache
}

func (c *Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// strategy is one facet's matching rule. enabled gates on the option value's
// emptiness: an inactive facet never constrains the result, whatever the
// item looks like.
type strategy struct {
	name    string
	enabled func(Options) bool
	match   func(*api.CatalogItem, Options, *Context) bool
}

var strategies = []strategy{
	{
		name:    "query",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Query) != "" },
		match: func(item *api.CatalogItem, o Options, ctx *Context) bool {
			return ctx.cache().MatchesQuery(item, o.Query)
		},
	},
	{
		name:    "brand",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Brand) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			for _, app := range item.Applications {
				if EqualNormalized(app.Brand, o.Brand) {
					return true
				}
			}
			return false
		},
	},
	{
		name:    "model",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Model) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			for _, app := range item.Applications {
				if ContainsNormalized(app.Model, o.Model) || ContainsNormalized(app.Series, o.Model) {
					return true
				}
			}
			return false
		},
	},
	{
		name:    "year",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Year) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			for _, app := range item.Applications {
				if YearMatches(app.Year, o.Year) {
					return true
				}
			}
			return false
		},
	},
	{
		name:    "position",
		enabled: func(o Options) bool { return !o.Positions.empty() },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			return itemPositionSet(*item).contains(o.Positions)
		},
	},
	{
		name:    "oem",
		enabled: func(o Options) bool { return strings.TrimSpace(o.OEM) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			return anyCodeContains(item.OEMCodes, o.OEM)
		},
	},
	{
		name:    "fmsi",
		enabled: func(o Options) bool { return strings.TrimSpace(o.FMSI) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			return anyCodeContains(item.FMSICodes, o.FMSI)
		},
	},
	{
		name:    "width",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Width) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			return dimensionWithinBand(item.Dimensions.Width, o.Width)
		},
	},
	{
		name:    "height",
		enabled: func(o Options) bool { return strings.TrimSpace(o.Height) != "" },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			return dimensionWithinBand(item.Dimensions.Height, o.Height)
		},
	},
	{
		name:    "tags",
		enabled: func(o Options) bool { return len(o.Tags) > 0 },
		match: func(item *api.CatalogItem, o Options, _ *Context) bool {
			for _, tag := range o.Tags {
				if ItemHasTag(*item, tag) {
					return true
				}
			}
			return false
		},
	},
	{
		name:    "favorites",
		enabled: func(o Options) bool { return o.FavoritesOnly },
		match: func(item *api.CatalogItem, _ Options, ctx *Context) bool {
			_, ok := ctx.Favorites[item.ID]
			return ok
		},
	},
	{
		name:    "new",
		enabled: func(o Options) bool { return o.NewOnly },
		match: func(item *api.CatalogItem, _ Options, ctx *Context) bool {
			return IsNew(*item, ctx.now())
		},
	},
}

// Apply filters the catalog snapshot with every active facet as a
// conjunction, then applies the deterministic reference-number ordering when
// no free-text query is active. It never fails: malformed filter values
// degrade to permissive matching.
func Apply(items []api.CatalogItem, opts Options, ctx *Context) []api.CatalogItem {
	if len(items) == 0 {
		return items
	}
	if ctx == nil {
		ctx = NewContext()
	}

	active := make([]strategy, 0, len(strategies))
	for _, s := range strategies {
		if s.enabled(opts) {
			active = append(active, s)
		}
	}

	var result []api.CatalogItem
	for i := range items {
		keep := true
		for _, s := range active {
			if !s.match(&items[i], opts, ctx) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, items[i])
		}
	}

	if strings.TrimSpace(opts.Query) == "" {
		SortByReference(result)
	}

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result
}

// IsNew reports whether the reference was added within the new-item window.
// Items without a creation timestamp are never new.
func IsNew(item api.CatalogItem, now time.Time) bool {
	if item.CreatedAt <= 0 {
		return false
	}
	return now.Sub(time.UnixMilli(item.CreatedAt)) < newItemWindow
}

func anyCodeContains(codes []string, query string) bool {
	for _, code := range codes {
		if ContainsNormalized(code, query) {
			return true
		}
	}
	return false
}

// dimensionWithinBand applies the ± tolerance band. A query that does not
// parse as a number short-circuits to match-all; an item with no usable
// measurement does not match.
func dimensionWithinBand(value api.FlexNumber, query string) bool {
	q, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(query), ",", "."), 64)
	if err != nil {
		return true
	}
	v, ok := value.Float()
	if !ok {
		return false
	}
	return math.Abs(v-q) <= dimensionTolerance
}

// ParsePositionSelection builds the query-side position set from raw values
// like "front", "rear" or "both".
func ParsePositionSelection(values []string) PositionSet {
	var set PositionSet
	for _, v := range values {
		set = set.union(ExpandPosition(api.Position(strings.ToLower(strings.TrimSpace(v)))))
	}
	return set
}

// Brands returns a map of application brand to item count across the
// snapshot. Items without applications contribute nothing.
func Brands(items []api.CatalogItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		seen := map[string]struct{}{}
		for _, app := range item.Applications {
			b := Normalize(app.Brand)
			if b == "" {
				continue
			}
			if _, dup := seen[b]; dup {
				continue
			}
			seen[b] = struct{}{}
			counts[b]++
		}
	}
	return counts
}

// TagCounts returns a map of brand-tag id to item count across the snapshot.
func TagCounts(items []api.CatalogItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		for _, tag := range ItemTags(item) {
			counts[tag]++
		}
	}
	return counts
}
