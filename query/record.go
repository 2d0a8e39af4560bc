package query

import (
	"fmt"

	"github.com/kbukum/lego/errors"
)

// Record is one item of a collection: a flat field/value mapping.
type Record map[string]any

// Collection is an ordered sequence of records.
type Collection []Record

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined stands for an absent field. FilterIn matches it against records
// that do not carry the filtered property at all.
var Undefined any = undefinedValue{}

// Get returns the value of field and whether the record carries it.
func (r Record) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Len returns the number of records.
func (c Collection) Len() int { return len(c) }

// FromValue converts decoded data into a Collection. It accepts a Collection,
// a []Record, a []map[string]any, or a []any whose elements are all maps
// with string keys (the shape encoding/json and yaml decoders produce).
func FromValue(v any) (Collection, error) {
	switch val := v.(type) {
	case Collection:
		return val, nil
	case []Record:
		return Collection(val), nil
	case []map[string]any:
		out := make(Collection, len(val))
		for i, m := range val {
			out[i] = Record(m)
		}
		return out, nil
	case []any:
		out := make(Collection, len(val))
		for i, item := range val {
			switch rec := item.(type) {
			case map[string]any:
				out[i] = Record(rec)
			case Record:
				out[i] = rec
			default:
				return nil, errors.InvalidCollection(fmt.Sprintf("element %d is %T, not a record", i, item)).
					WithDetail("index", i)
			}
		}
		return out, nil
	case nil:
		return nil, errors.InvalidCollection("collection is nil")
	default:
		return nil, errors.InvalidCollection(fmt.Sprintf("%T is not a sequence of records", v))
	}
}
