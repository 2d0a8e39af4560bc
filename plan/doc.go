// Package plan turns declarative YAML step lists into query transformations.
//
// A plan names the factory calls of a query:
//
//	name: engineers
//	steps:
//	  - op: filterIn
//	    property: profession
//	    values: [engineer]
//	  - op: sortBy
//	    property: age
//	    order: desc
//	  - op: format
//	    property: phone
//	    formatter: phone
//	  - op: or
//	    steps:
//	      - {op: filterIn, property: city, values: [X]}
//	      - {op: filterIn, property: city, missing: true}
//	  - op: limit
//	    count: 10
//
// Steps may appear in any order; the query runner orders them. Formatters
// are looked up by name in a Registry.
package plan
