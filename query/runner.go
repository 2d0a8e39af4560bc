package query

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/logger"
	"github.com/kbukum/lego/observability"
)

// Runner orders transformations by a priority table and folds them over a
// deep copy of the input collection. A Runner is safe for concurrent use.
type Runner struct {
	priorities Priorities
	log        *logger.Logger
	tracer     trace.Tracer
	metrics    *observability.QueryMetrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithPriorities replaces the priority table. The map is copied.
func WithPriorities(p Priorities) Option {
	return func(r *Runner) {
		r.priorities = make(Priorities, len(p))
		for k, v := range p {
			r.priorities[k] = v
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTracer sets the tracer used for run spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics sets the instruments recorded per run. Nil disables metrics.
func WithMetrics(m *observability.QueryMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a Runner with the default priority table, the "query"
// logger and the global OpenTelemetry providers.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		priorities: DefaultPriorities(),
		log:        logger.Get("query"),
		tracer:     observability.Tracer(""),
	}
	if m, err := observability.NewQueryMetrics(observability.Meter("")); err == nil {
		r.metrics = m
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query runs fns over c with a default Runner.
func Query(c Collection, fns ...Transformation) (Collection, error) {
	return NewRunner().Run(context.Background(), c, fns...)
}

// Plan returns the kinds of fns in the order the default priority table
// runs them.
func Plan(fns ...Transformation) ([]Kind, error) {
	return NewRunner(WithMetrics(nil)).Plan(fns...)
}

// Plan returns the kinds of fns in execution order without running them.
func (r *Runner) Plan(fns ...Transformation) ([]Kind, error) {
	ordered, err := r.order(fns)
	if err != nil {
		return nil, err
	}
	kinds := make([]Kind, len(ordered))
	for i, t := range ordered {
		kinds[i] = t.Kind()
	}
	return kinds, nil
}

// Rank returns the rank the runner assigns to k.
func (r *Runner) Rank(k Kind) (int, bool) {
	return r.priorities.Rank(k)
}

// Run applies fns to a deep copy of c in priority order. The input
// collection and its records are never modified. ctx is used for span and
// log correlation only.
func (r *Runner) Run(ctx context.Context, c Collection, fns ...Transformation) (Collection, error) {
	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := r.log.WithContext(ctx)

	ctx, span := r.tracer.Start(ctx, observability.SpanQueryRun,
		trace.WithAttributes(
			attribute.String(observability.AttrRunID, runID),
			attribute.Int(observability.AttrRecordsIn, len(c)),
		),
	)
	defer span.End()

	start := time.Now()

	out, kinds, err := r.run(c, fns)
	elapsed := time.Since(start)

	if err != nil {
		appErr := errors.From(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, appErr.Message)
		span.SetAttributes(
			attribute.String(observability.AttrStatus, observability.StatusError),
			attribute.String(observability.AttrErrorCode, string(appErr.Code)),
		)
		if r.metrics != nil {
			r.metrics.RecordRun(ctx, observability.StatusError, len(c), 0, elapsed)
			r.metrics.RecordError(ctx, string(appErr.Code))
		}
		log.Warn("query rejected", logger.RejectFields(string(appErr.Code), len(c), err))
		return nil, err
	}

	plan := joinKinds(kinds)
	span.SetAttributes(
		attribute.String(observability.AttrPlan, plan),
		attribute.Int(observability.AttrRecordsOut, len(out)),
		attribute.String(observability.AttrStatus, observability.StatusOK),
	)
	span.SetStatus(codes.Ok, "")
	if r.metrics != nil {
		for _, k := range kinds {
			r.metrics.RecordStep(ctx, string(k))
		}
		r.metrics.RecordRun(ctx, observability.StatusOK, len(c), len(out), elapsed)
	}
	log.Debug("query completed", logger.RunFields(plan, len(c), len(out), elapsed))

	return out, nil
}

func (r *Runner) run(c Collection, fns []Transformation) (Collection, []Kind, error) {
	ordered, err := r.order(fns)
	if err != nil {
		return nil, nil, err
	}

	working, err := Copy(c)
	if err != nil {
		return nil, nil, err
	}

	kinds := make([]Kind, len(ordered))
	for i, t := range ordered {
		working = t.Apply(working)
		kinds[i] = t.Kind()
	}
	if working == nil {
		working = Collection{}
	}
	return working, kinds, nil
}

// order validates fns and stable-sorts a copy of them by rank.
func (r *Runner) order(fns []Transformation) ([]Transformation, error) {
	type ranked struct {
		t    Transformation
		rank int
	}

	items := make([]ranked, len(fns))
	for i, t := range fns {
		if err := t.Err(); err != nil {
			return nil, errors.InvalidTransformation(i,
				fmt.Sprintf("argument %d (%s) cannot run", i, describeKind(t.Kind()))).
				WithCause(err)
		}
		rank, ok := r.priorities.Rank(t.Kind())
		if !ok {
			return nil, errors.InvalidTransformation(i,
				fmt.Sprintf("no priority for kind %s", t.Kind()))
		}
		items[i] = ranked{t: t, rank: rank}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		return cmp.Compare(a.rank, b.rank)
	})

	out := make([]Transformation, len(items))
	for i, it := range items {
		out[i] = it.t
	}
	return out, nil
}

func describeKind(k Kind) string {
	if k == "" {
		return "untyped"
	}
	return string(k)
}

func joinKinds(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
