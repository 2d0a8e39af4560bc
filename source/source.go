package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/query"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.InvalidInput("data", fmt.Sprintf("unsupported file extension %q", filepath.Ext(path)))
}

type options struct {
	strict bool
}

// Option configures decoding.
type Option func(*options)

// WithStrict requires every record field to hold a scalar value.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

const (
	collectionSchema = `{
  "type": "array",
  "items": {"type": "object"}
}`
	flatCollectionSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": {"type": ["string", "number", "integer", "boolean", "null"]}
  }
}`
)

var (
	shapeSchema = mustSchema(collectionSchema)
	flatSchema  = mustSchema(flatCollectionSchema)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("source: invalid built-in schema: %v", err))
	}
	return schema
}

// Decode reads a document in the given format and converts it into a
// collection. JSON integers become int64 and other JSON numbers float64.
func Decode(r io.Reader, format Format, opts ...Option) (query.Collection, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, malformed(format, err)
		}
		if dec.More() {
			return nil, errors.InvalidCollection("trailing data after JSON document")
		}
		doc = normalizeNumbers(doc)
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, malformed(format, err)
		}
	default:
		return nil, errors.InvalidInput("format", fmt.Sprintf("unsupported format %q", format))
	}

	schema := shapeSchema
	if o.strict {
		schema = flatSchema
	}
	if err := checkShape(schema, doc); err != nil {
		return nil, err
	}
	return query.FromValue(doc)
}

// ReadFile decodes the file at path, choosing the format by extension.
func ReadFile(path string, opts ...Option) (query.Collection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("data file", path).WithCause(err)
		}
		return nil, errors.Internal(err)
	}
	c, err := Decode(bytes.NewReader(data), format, opts...)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.WithDetail("file", path)
		}
		return nil, err
	}
	return c, nil
}

// Encode writes c as a JSON array. A nil collection is written as [].
func Encode(w io.Writer, c query.Collection, pretty bool) error {
	if c == nil {
		c = query.Collection{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(c); err != nil {
		return errors.Serialization("", err.Error()).WithCause(err)
	}
	return nil
}

func malformed(format Format, err error) error {
	if err == io.EOF {
		return errors.InvalidCollection("empty document")
	}
	return errors.InvalidCollection(fmt.Sprintf("malformed %s document", format)).WithCause(err)
}

func checkShape(schema *gojsonschema.Schema, doc any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return errors.InvalidCollection("document cannot be checked").WithCause(err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return errors.InvalidCollection(strings.Join(problems, "; ")).
		WithDetail("schema_errors", problems)
}

// normalizeNumbers replaces json.Number values with int64 or float64.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	}
	return v
}
