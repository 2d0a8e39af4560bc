// Package validation checks plan steps and configuration before they are
// used.
//
// Struct tag validation wraps go-playground/validator with two extra tags:
// sortorder (asc or desc) and kind (a known transformation kind).
//
//	type Step struct {
//	    Op    string `yaml:"op" validate:"required,kind"`
//	    Order string `yaml:"order" validate:"omitempty,sortorder"`
//	}
//	err := validation.Validate(step)
//
// Programmatic validation collects field errors:
//
//	v := validation.New()
//	v.Required("property", step.Property)
//	err := v.Err()
package validation
