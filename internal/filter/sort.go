package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

// unsortableReference sorts digit-less references after every real part
// number.
const unsortableReference = 999999

// SortableReference extracts the numeric sort key of an item: the first run
// of digits in its primary reference, or in its first alternate when no
// primary is present.
func SortableReference(item api.CatalogItem) int {
	ref := strings.TrimSpace(item.PrimaryRef)
	if ref == "" && len(item.AlternateRefs) > 0 {
		ref = strings.TrimSpace(item.AlternateRefs[0])
	}

	start := -1
	for i := 0; i < len(ref); i++ {
		if ref[i] >= '0' && ref[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return unsortableReference
	}

	end := start
	for end < len(ref) && ref[end] >= '0' && ref[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(ref[start:end])
	if err != nil {
		return unsortableReference
	}
	return n
}

// SortByReference orders items ascending by their numeric reference key.
// Stable, so equal keys keep the snapshot order and repeated runs over the
// same input reproduce the same output.
func SortByReference(items []api.CatalogItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return SortableReference(items[i]) < SortableReference(items[j])
	})
}
