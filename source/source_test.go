package source

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/query"
	"github.com/kbukum/lego/testutil"
)

const peopleJSON = `[
  {"name": "Ana", "age": 30, "score": 4.5, "tags": ["a"], "address": {"city": "X"}},
  {"name": "Bo", "age": 25, "active": true, "note": null}
]`

const peopleYAML = `
- name: Ana
  age: 30
  city: X
- name: Bo
  age: 25
`

func TestDecode_JSON(t *testing.T) {
	c, err := Decode(strings.NewReader(peopleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", c.Len())
	}
	if age, ok := c[0]["age"].(int64); !ok || age != 30 {
		t.Errorf("expected int64 age, got %T %v", c[0]["age"], c[0]["age"])
	}
	if score, ok := c[0]["score"].(float64); !ok || score != 4.5 {
		t.Errorf("expected float64 score, got %T %v", c[0]["score"], c[0]["score"])
	}
	if _, ok := c[1]["note"]; !ok {
		t.Error("null fields should be kept")
	}
}

func TestDecode_YAML(t *testing.T) {
	c, err := Decode(strings.NewReader(peopleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Len() != 2 || c[1]["name"] != "Bo" {
		t.Fatalf("unexpected collection %v", c)
	}

	got, err := query.Query(c, query.FilterIn("age", []any{int64(30)}))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "Ana" {
		t.Errorf("numeric match across decoders failed: %v", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		opts   []Option
		code   errors.ErrorCode
	}{
		{"empty", "", FormatJSON, nil, errors.ErrCodeInvalidCollection},
		{"malformed json", `[{"a": 1}`, FormatJSON, nil, errors.ErrCodeInvalidCollection},
		{"trailing data", `[] []`, FormatJSON, nil, errors.ErrCodeInvalidCollection},
		{"object root", `{"a": 1}`, FormatJSON, nil, errors.ErrCodeInvalidCollection},
		{"scalar items", `[1, 2]`, FormatJSON, nil, errors.ErrCodeInvalidCollection},
		{"yaml mapping", "a: 1\n", FormatYAML, nil, errors.ErrCodeInvalidCollection},
		{"strict nested", peopleJSON, FormatJSON, []Option{WithStrict(true)}, errors.ErrCodeInvalidCollection},
		{"unknown format", `[]`, Format("csv"), nil, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format, tt.opts...)
			if !errors.IsCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestDecode_StrictFlat(t *testing.T) {
	c, err := Decode(strings.NewReader(`[{"a": 1, "b": "x", "c": null, "d": false}]`), FormatJSON, WithStrict(true))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 record, got %d", c.Len())
	}
}

func TestDecode_SchemaDetails(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"a": 1}, "x"]`), FormatJSON)
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	problems, ok := appErr.Details["schema_errors"].([]string)
	if !ok || len(problems) == 0 {
		t.Fatalf("expected schema errors in details, got %v", appErr.Details)
	}
	if !strings.Contains(problems[0], "1") {
		t.Errorf("expected the failing index in %q", problems[0])
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"people.json", FormatJSON, false},
		{"people.YAML", FormatYAML, false},
		{"dir/people.yml", FormatYAML, false},
		{"people.csv", "", true},
		{"people", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := testutil.WriteFile(t, "people.json", peopleJSON)
	dir := filepath.Dir(path)

	c, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 records, got %d", c.Len())
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	bad := testutil.WriteFileIn(t, dir, "bad.json", `{}`)
	_, err = ReadFile(bad)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Details["file"] != bad {
		t.Errorf("expected file detail, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, query.Collection{{"name": "A&B", "age": 1}}, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != `[{"age":1,"name":"A&B"}]`+"\n" {
		t.Errorf("unexpected output %q", got)
	}

	buf.Reset()
	if err := Encode(&buf, nil, true); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("expected empty array, got %q", buf.String())
	}

	buf.Reset()
	if err := Encode(&buf, query.Collection{{"a": 1}}, true); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  {\n    \"a\": 1\n  }") {
		t.Errorf("expected indented output, got %q", buf.String())
	}

	if err := Encode(&buf, query.Collection{{"f": func() {}}}, false); !errors.IsCode(err, errors.ErrCodeSerialization) {
		t.Errorf("expected SERIALIZATION_ERROR, got %v", err)
	}
}
