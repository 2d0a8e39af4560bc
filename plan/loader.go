package plan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/observability"
)

// Decode reads a YAML (or JSON) plan document and validates its tags.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidPlan("", "empty document")
		}
		return nil, errors.InvalidPlan("", "malformed document").WithCause(err)
	}
	if err := p.Validate(); err != nil {
		return nil, errors.InvalidPlan("", errors.From(err).Message).WithCause(err)
	}
	return &p, nil
}

// Load reads a plan file.
func Load(ctx context.Context, path string) (*Plan, error) {
	_, span := observability.StartSpan(ctx, observability.SpanPlanLoad)
	defer span.End()
	span.SetAttributes(attribute.String("plan.path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if os.IsNotExist(err) {
			return nil, errors.NotFound("plan", path).WithCause(err)
		}
		return nil, errors.Internal(err)
	}

	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = nameFromPath(path)
	}
	span.SetAttributes(
		attribute.String(observability.AttrPlan, p.Name),
		attribute.Int("plan.steps", len(p.Steps)),
	)
	return p, nil
}

// Loader loads plans by name.
type Loader interface {
	Load(ctx context.Context, name string) (*Plan, error)
}

// FileLoader finds plans in a list of directories.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches dirs for {name}.yaml or
// {name}.yml.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load resolves name to a file. A name that is itself an existing file is
// loaded directly.
func (l *FileLoader) Load(ctx context.Context, name string) (*Plan, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return Load(ctx, name)
	}
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return Load(ctx, path)
			}
		}
	}
	return nil, errors.NotFound("plan", name).
		WithDetail("dirs", l.dirs)
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
