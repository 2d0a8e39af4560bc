package query

// Limit builds a transformation that keeps the first count records.
// A count of zero or less yields an empty collection.
func Limit(count int) Transformation {
	return newTransformation(KindLimit, func(c Collection) Collection {
		n := min(max(count, 0), len(c))
		out := make(Collection, n)
		copy(out, c[:n])
		return out
	})
}
