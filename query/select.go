package query

// Select builds a transformation that keeps only the named fields. Each
// output record is new; requested fields absent from a record are omitted.
func Select(fields ...string) Transformation {
	wanted := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		wanted[f] = struct{}{}
	}

	return newTransformation(KindSelect, func(c Collection) Collection {
		out := make(Collection, len(c))
		for i, r := range c {
			rec := make(Record, len(wanted))
			for field, v := range r {
				if _, ok := wanted[field]; ok {
					rec[field] = v
				}
			}
			out[i] = rec
		}
		return out
	})
}
