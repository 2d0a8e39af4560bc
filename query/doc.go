// Package query runs declarative transformations over in-memory collections
// of flat records.
//
// A caller builds transformations with the factories (Select, FilterIn,
// SortBy, Format, Limit and the Or/And combinators) and hands them to Query
// in any order. The runner sorts them by a fixed priority table, deep-copies
// the input and folds the transformations over the copy, so the caller's
// collection is never mutated.
//
//	people := query.Collection{
//	    {"name": "Sam", "city": "Perth", "age": 30},
//	    {"name": "Ann", "city": "Oslo", "age": 24},
//	}
//	out, err := query.Query(people,
//	    query.Limit(1),
//	    query.Select("name"),
//	    query.SortBy("age", query.OrderAsc),
//	)
//	// out == []Record{{"name": "Ann"}}
//
// Execution order by kind: and/or, filterIn, sortBy, select, format, limit.
// Kinds with the same rank keep the order they were passed in.
package query
