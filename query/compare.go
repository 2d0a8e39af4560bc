package query

import (
	"cmp"
	"encoding/json"
	"reflect"
	"time"
)

// Type ranks keep comparisons between values of different types a strict
// weak order.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankOther
)

func typeRank(v any) int {
	switch v.(type) {
	case nil, undefinedValue:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	case time.Time:
		return rankTime
	}
	if _, ok := toNumber(v); ok {
		return rankNumber
	}
	if reflect.ValueOf(v).Kind() == reflect.String {
		return rankString
	}
	return rankOther
}

// number is a numeric value kept exact when it is integral.
type number struct {
	i       int64
	f       float64
	integer bool
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{i: int64(n), integer: true}, true
	case int64:
		return number{i: n, integer: true}, true
	case float64:
		return number{f: n}, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return number{i: i, integer: true}, true
		}
		if f, err := n.Float64(); err == nil {
			return number{f: f}, true
		}
		return number{}, false
	case bool, string, nil:
		return number{}, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{i: rv.Int(), integer: true}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return number{f: float64(u)}, true
		}
		return number{i: int64(u), integer: true}, true
	case reflect.Float32, reflect.Float64:
		return number{f: rv.Float()}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	if n.integer {
		return float64(n.i)
	}
	return n.f
}

func compareNumbers(a, b number) int {
	if a.integer && b.integer {
		return cmp.Compare(a.i, b.i)
	}
	return cmp.Compare(a.float(), b.float())
}

// compareValues is the three-way comparison used by SortBy: numbers
// numerically, strings lexicographically, false before true, times
// chronologically. Values of different types order by type rank.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case rankNumber:
		na, _ := toNumber(a)
		nb, _ := toNumber(b)
		return compareNumbers(na, nb)
	case rankString:
		return cmp.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return 0
}

// valuesEqual is the membership test used by FilterIn. Numbers compare by
// value across Go numeric types, times by instant, everything else
// structurally with the same dynamic type.
func valuesEqual(a, b any) bool {
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return compareNumbers(na, nb) == 0
		}
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
