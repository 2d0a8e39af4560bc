package query

import (
	"fmt"
	"reflect"

	"github.com/kbukum/lego/errors"
)

// CombinatorsSupported reports that Or and And are available.
const CombinatorsSupported = true

// Or builds a transformation that applies every filter to the same input
// and returns the union of their results. A record returned by several
// filters appears once, at its first position. Records are told apart by
// identity: distinct records with equal fields are all kept.
func Or(filters ...Transformation) Transformation {
	fs, err := checkFilters(KindOr, filters)
	if err != nil {
		return invalidTransformation(KindOr, err)
	}

	return newTransformation(KindOr, func(c Collection) Collection {
		out := make(Collection, 0, len(c))
		seen := make(map[uintptr]struct{}, len(c))
		for _, f := range fs {
			for _, r := range f.Apply(c) {
				id := recordID(r)
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, r)
			}
		}
		return out
	})
}

// And builds a transformation that chains filters: each one receives the
// output of the previous, so surviving records satisfy all of them.
func And(filters ...Transformation) Transformation {
	fs, err := checkFilters(KindAnd, filters)
	if err != nil {
		return invalidTransformation(KindAnd, err)
	}

	return newTransformation(KindAnd, func(c Collection) Collection {
		out := make(Collection, len(c))
		copy(out, c)
		for _, f := range fs {
			out = f.Apply(out)
		}
		return out
	})
}

func checkFilters(kind Kind, filters []Transformation) ([]Transformation, *errors.AppError) {
	fs := make([]Transformation, len(filters))
	for i, f := range filters {
		if err := f.Err(); err != nil {
			return nil, errors.InvalidTransformation(-1,
				fmt.Sprintf("%s: filter %d is invalid", kind, i)).
				WithDetail("filter", i).
				WithCause(err)
		}
		fs[i] = f
	}
	return fs, nil
}

// recordID identifies a record by the map it points to.
func recordID(r Record) uintptr {
	return reflect.ValueOf(r).Pointer()
}
