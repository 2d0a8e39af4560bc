package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/lego/errors"
)

// FieldError names one invalid field. Nested fields use dotted paths with
// indexes, e.g. steps[1].property.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator accumulates field errors for rules that struct tags cannot
// express, such as fields required only for a particular op.
type Validator struct {
	fields []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure on field.
func (v *Validator) AddError(field, message string) *Validator {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
	return v
}

// HasErrors reports whether any rule failed.
func (v *Validator) HasErrors() bool { return len(v.fields) > 0 }

// Errors returns the recorded failures in the order they were added.
func (v *Validator) Errors() []FieldError { return v.fields }

// Required fails when value is blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// NotEmpty fails when a list field has no elements.
func (v *Validator) NotEmpty(field string, n int) *Validator {
	if n == 0 {
		v.AddError(field, "must not be empty")
	}
	return v
}

// Registered fails when a non-empty name is not known to lookup. Empty names
// are left to Required.
func (v *Validator) Registered(field, name string, lookup func(string) bool) *Validator {
	if name != "" && !lookup(name) {
		v.AddError(field, fmt.Sprintf("%q is not registered", name))
	}
	return v
}

// Custom fails with message unless condition holds.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Err returns an INVALID_INPUT AppError listing every failure, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(v.fields)
}

func fieldsError(fields []FieldError) *errors.AppError {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return errors.Validation(strings.Join(parts, "; ")).
		WithDetail("fields", fields)
}
