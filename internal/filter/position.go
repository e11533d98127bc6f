package filter

import "github.com/rcardenasv/brakepad-catalog/internal/api"

// PositionSet is the derived {front, rear} membership of an item or query.
type PositionSet struct {
	Front bool
	Rear  bool
}

// ExpandPosition maps a position value onto the closed {front, rear} set;
// BOTH is membership in both. Used uniformly for item-side and query-side
// values so the expansion rule lives in one place.
func ExpandPosition(p api.Position) PositionSet {
	switch p {
	case api.PositionFront:
		return PositionSet{Front: true}
	case api.PositionRear:
		return PositionSet{Rear: true}
	case api.PositionBoth:
		return PositionSet{Front: true, Rear: true}
	default:
		return PositionSet{}
	}
}

func (s PositionSet) union(other PositionSet) PositionSet {
	return PositionSet{Front: s.Front || other.Front, Rear: s.Rear || other.Rear}
}

// contains reports whether every position selected in query is present in s.
func (s PositionSet) contains(query PositionSet) bool {
	if query.Front && !s.Front {
		return false
	}
	if query.Rear && !s.Rear {
		return false
	}
	return true
}

func (s PositionSet) empty() bool {
	return !s.Front && !s.Rear
}

// itemPositionSet derives an item's position set. The item-level position,
// when set, is authoritative; only an unset item position falls back to the
// union over its applications. Strict either/or, never a merge.
func itemPositionSet(item api.CatalogItem) PositionSet {
	if item.Position != api.PositionUnset {
		return ExpandPosition(item.Position)
	}
	var set PositionSet
	for _, app := range item.Applications {
		set = set.union(ExpandPosition(app.Position))
	}
	return set
}
