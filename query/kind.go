package query

import "maps"

// Kind identifies which factory produced a transformation. The runner orders
// transformations by the rank of their kind.
type Kind string

const (
	KindAnd      Kind = "and"
	KindOr       Kind = "or"
	KindFilterIn Kind = "filterIn"
	KindSortBy   Kind = "sortBy"
	KindSelect   Kind = "select"
	KindFormat   Kind = "format"
	KindLimit    Kind = "limit"
)

// AllKinds returns every kind in default execution order.
func AllKinds() []Kind {
	return []Kind{KindAnd, KindOr, KindFilterIn, KindSortBy, KindSelect, KindFormat, KindLimit}
}

// IsValid reports whether the kind is known.
func (k Kind) IsValid() bool {
	for _, v := range AllKinds() {
		if k == v {
			return true
		}
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Priorities maps a kind to its execution rank. Lower ranks run first.
type Priorities map[Kind]int

var defaultPriorities = Priorities{
	KindAnd:      1,
	KindOr:       1,
	KindFilterIn: 2,
	KindSortBy:   3,
	KindSelect:   4,
	KindFormat:   5,
	KindLimit:    6,
}

// DefaultPriorities returns a copy of the standard priority table.
func DefaultPriorities() Priorities {
	return maps.Clone(defaultPriorities)
}

// Rank returns the rank of k and whether the table has one.
func (p Priorities) Rank(k Kind) (int, bool) {
	r, ok := p[k]
	return r, ok
}
