package query

import "slices"

// FilterIn builds a transformation that keeps records whose property value
// is one of values. Surviving records keep their order and identity.
// Records without the property survive only when values contains Undefined.
func FilterIn(property string, values []any) Transformation {
	vals := slices.Clone(values)
	matchMissing := slices.Contains(vals, Undefined)

	return newTransformation(KindFilterIn, func(c Collection) Collection {
		out := make(Collection, 0, len(c))
		for _, r := range c {
			v, ok := r[property]
			if !ok {
				if matchMissing {
					out = append(out, r)
				}
				continue
			}
			if containsValue(vals, v) {
				out = append(out, r)
			}
		}
		return out
	})
}

func containsValue(values []any, v any) bool {
	for _, candidate := range values {
		if valuesEqual(candidate, v) {
			return true
		}
	}
	return false
}
