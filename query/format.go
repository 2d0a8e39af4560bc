package query

import (
	"github.com/kbukum/lego/errors"
)

// Formatter maps a field value to its formatted value. It receives nil for
// records that lack the field.
type Formatter func(any) any

// Format builds a transformation that replaces property on every record
// with formatter(value). Records lacking the property gain it with
// formatter(nil). Output records are shallow clones of the input records.
func Format(property string, formatter Formatter) Transformation {
	if formatter == nil {
		return invalidTransformation(KindFormat,
			errors.InvalidTransformation(-1, "format "+property+": nil formatter"))
	}

	return newTransformation(KindFormat, func(c Collection) Collection {
		out := make(Collection, len(c))
		for i, r := range c {
			rec := make(Record, len(r)+1)
			for k, v := range r {
				rec[k] = v
			}
			rec[property] = formatter(r[property])
			out[i] = rec
		}
		return out
	})
}
