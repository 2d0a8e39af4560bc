package plan

import (
	"github.com/kbukum/lego/query"
	"github.com/kbukum/lego/validation"
)

// Plan is a named list of steps.
type Plan struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps" validate:"dive"`
}

// Step describes one factory call. Which fields apply depends on Op.
type Step struct {
	Op        string   `yaml:"op" json:"op" validate:"required,kind"`
	Fields    []string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Property  string   `yaml:"property,omitempty" json:"property,omitempty"`
	Values    []any    `yaml:"values,omitempty" json:"values,omitempty"`
	Missing   bool     `yaml:"missing,omitempty" json:"missing,omitempty"`
	Order     string   `yaml:"order,omitempty" json:"order,omitempty" validate:"omitempty,sortorder"`
	Formatter string   `yaml:"formatter,omitempty" json:"formatter,omitempty"`
	Count     *int     `yaml:"count,omitempty" json:"count,omitempty"`
	Steps     []Step   `yaml:"steps,omitempty" json:"steps,omitempty" validate:"dive"`
}

// Kind returns the transformation kind the step builds.
func (s Step) Kind() query.Kind { return query.Kind(s.Op) }

// Validate checks the plan's struct tags.
func (p *Plan) Validate() error {
	return validation.Validate(p)
}
