package query

import "slices"

// Sort orders accepted by SortBy.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortBy builds a transformation that orders records by property. "asc"
// sorts ascending; any other order sorts descending. Records lacking the
// property sort as nil: first when ascending, last when descending.
// Records with equal keys keep their relative order.
func SortBy(property, order string) Transformation {
	desc := order != OrderAsc

	return newTransformation(KindSortBy, func(c Collection) Collection {
		out := make(Collection, len(c))
		copy(out, c)
		slices.SortStableFunc(out, func(a, b Record) int {
			n := compareValues(a[property], b[property])
			if desc {
				return -n
			}
			return n
		})
		return out
	})
}
