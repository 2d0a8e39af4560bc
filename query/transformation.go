package query

import (
	"github.com/kbukum/lego/errors"
)

// Transformation maps a collection to a collection. It is tagged with the
// kind of the factory that built it. The zero value is invalid.
type Transformation struct {
	kind Kind
	fn   func(Collection) Collection
	err  *errors.AppError
}

func newTransformation(kind Kind, fn func(Collection) Collection) Transformation {
	return Transformation{kind: kind, fn: fn}
}

// invalidTransformation carries a build-time error to the runner.
func invalidTransformation(kind Kind, err *errors.AppError) Transformation {
	return Transformation{kind: kind, err: err}
}

// Kind returns the kind tag set by the factory.
func (t Transformation) Kind() Kind { return t.kind }

// Apply runs the transformation. An invalid transformation returns c as is;
// the runner rejects invalid transformations before applying anything.
func (t Transformation) Apply(c Collection) Collection {
	if t.fn == nil {
		return c
	}
	return t.fn(c)
}

// Err returns the reason the transformation cannot run, or nil.
func (t Transformation) Err() error {
	if t.err != nil {
		return t.err
	}
	if t.fn == nil {
		return errors.InvalidTransformation(-1, "zero-value transformation")
	}
	if !t.kind.IsValid() {
		return errors.InvalidTransformation(-1, "unknown kind "+string(t.kind))
	}
	return nil
}
