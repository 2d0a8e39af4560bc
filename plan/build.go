package plan

import (
	"fmt"

	"github.com/kbukum/lego/config"
	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/query"
	"github.com/kbukum/lego/util"
	"github.com/kbukum/lego/validation"
)

// Build turns a plan into transformations. Sort steps without an order use
// cfg.DefaultOrder; limit steps are capped at cfg.MaxLimit when it is set.
// A nil registry means DefaultRegistry.
func Build(p *Plan, registry *Registry, cfg config.QueryConfig) ([]query.Transformation, error) {
	if p == nil {
		return nil, errors.InvalidPlan("", "plan is nil")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	b := &builder{registry: registry, cfg: cfg}

	out := make([]query.Transformation, 0, len(p.Steps))
	for i, s := range p.Steps {
		t, err := b.step(s, fmt.Sprintf("steps[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type builder struct {
	registry *Registry
	cfg      config.QueryConfig
}

func (b *builder) step(s Step, path string) (query.Transformation, error) {
	if err := b.check(s); err != nil {
		return query.Transformation{}, errors.InvalidPlan(path, fmt.Sprintf("%s (%s)", path, errors.From(err).Message)).
			WithCause(err)
	}

	switch s.Kind() {
	case query.KindSelect:
		return query.Select(s.Fields...), nil

	case query.KindFilterIn:
		values := s.Values
		if s.Missing {
			values = append(append([]any(nil), values...), query.Undefined)
		}
		return query.FilterIn(s.Property, values), nil

	case query.KindSortBy:
		return query.SortBy(s.Property, util.Coalesce(s.Order, b.cfg.DefaultOrder, query.OrderAsc)), nil

	case query.KindFormat:
		f, _ := b.registry.Get(s.Formatter)
		return query.Format(s.Property, f), nil

	case query.KindLimit:
		count := *s.Count
		if b.cfg.MaxLimit > 0 && count > b.cfg.MaxLimit {
			count = b.cfg.MaxLimit
		}
		return query.Limit(count), nil

	case query.KindOr, query.KindAnd:
		subs := make([]query.Transformation, len(s.Steps))
		for i, sub := range s.Steps {
			t, err := b.step(sub, fmt.Sprintf("%s.steps[%d]", path, i))
			if err != nil {
				return query.Transformation{}, err
			}
			subs[i] = t
		}
		if s.Kind() == query.KindOr {
			return query.Or(subs...), nil
		}
		return query.And(subs...), nil
	}

	return query.Transformation{}, errors.InvalidPlan(path, "unknown op "+s.Op)
}

// check validates the fields each op needs.
func (b *builder) check(s Step) error {
	if err := validation.Validate(s); err != nil {
		return err
	}

	v := validation.New()
	switch s.Kind() {
	case query.KindSelect:
		v.NotEmpty("fields", len(s.Fields))
	case query.KindFilterIn:
		v.Required("property", s.Property)
		v.Custom(len(s.Values) > 0 || s.Missing, "values", "must not be empty unless missing is set")
	case query.KindSortBy:
		v.Required("property", s.Property)
	case query.KindFormat:
		v.Required("property", s.Property)
		v.Required("formatter", s.Formatter)
		v.Registered("formatter", s.Formatter, b.registry.Has)
	case query.KindLimit:
		v.Custom(s.Count != nil, "count", "is required")
	case query.KindOr, query.KindAnd:
		v.NotEmpty("steps", len(s.Steps))
	}
	return v.Err()
}
