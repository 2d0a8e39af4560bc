package query

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/lego/errors"
)

type address struct {
	City   string
	Tags   []string
	secret string
}

func TestCopy_PreservesValues(t *testing.T) {
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	in := Collection{
		{
			"int":     42,
			"uint8":   uint8(7),
			"float":   1.5,
			"number":  json.Number("12"),
			"bool":    true,
			"nil":     nil,
			"time":    when,
			"list":    []any{"a", 1, map[string]any{"k": "v"}},
			"strings": []string{"x", "y"},
			"nested":  Record{"inner": []any{1, 2}},
			"struct":  address{City: "X", Tags: []string{"t"}},
			"ptr":     &address{City: "Y"},
			"intkeys": map[int]string{1: "one"},
			"array":   [2]int{1, 2},
		},
	}

	out, err := Copy(in)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("copy differs:\n got %#v\nwant %#v", out, in)
	}
	if _, ok := out[0]["int"].(int); !ok {
		t.Errorf("int should stay int, got %T", out[0]["int"])
	}
}

func TestCopy_Independent(t *testing.T) {
	inner := []any{"a"}
	ptr := &address{City: "Y", Tags: []string{"t"}}
	in := Collection{{"list": inner, "ptr": ptr, "strings": []string{"s"}}}

	out, err := Copy(in)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}

	out[0]["list"].([]any)[0] = "changed"
	out[0]["ptr"].(*address).City = "changed"
	out[0]["ptr"].(*address).Tags[0] = "changed"
	out[0]["strings"].([]string)[0] = "changed"

	if inner[0] != "a" || ptr.City != "Y" || ptr.Tags[0] != "t" || in[0]["strings"].([]string)[0] != "s" {
		t.Errorf("copy shares memory with the input: %#v", in)
	}
}

func TestCopy_DropsUnexportedFields(t *testing.T) {
	out, err := CopyRecord(Record{"a": address{City: "X", secret: "s"}})
	if err != nil {
		t.Fatalf("CopyRecord: %v", err)
	}
	if got := out["a"].(address); got.secret != "" || got.City != "X" {
		t.Errorf("unexpected struct copy %#v", got)
	}
}

func TestCopy_SharedNotCyclic(t *testing.T) {
	shared := []any{1}
	_, err := Copy(Collection{{"a": shared, "b": shared}, {"c": shared}})
	if err != nil {
		t.Errorf("shared values are not cycles: %v", err)
	}
}

func TestCopy_Errors(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	list := []any{nil}
	list[0] = list

	type node struct{ Next *node }
	loop := &node{}
	loop.Next = loop

	tests := []struct {
		name string
		rec  Record
		path string
	}{
		{"func", Record{"f": func() {}}, "[0].f"},
		{"chan", Record{"c": make(chan int)}, "[0].c"},
		{"complex", Record{"c": complex(1, 2)}, "[0].c"},
		{"nested func", Record{"l": []any{1, func() {}}}, "[0].l[1]"},
		{"bool keys", Record{"m": map[bool]int{true: 1}}, "[0].m"},
		{"cyclic map", Record{"m": cyclic}, "[0].m.self"},
		{"cyclic slice", Record{"l": list}, "[0].l[0]"},
		{"cyclic pointer", Record{"n": loop}, "[0].n.Next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Copy(Collection{tt.rec})
			if !errors.IsCode(err, errors.ErrCodeSerialization) {
				t.Fatalf("expected SERIALIZATION_ERROR, got %v", err)
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Details["path"] != tt.path {
				t.Errorf("path = %v, want %s", appErr.Details["path"], tt.path)
			}
		})
	}
}

func TestCopyRecord_Nil(t *testing.T) {
	out, err := CopyRecord(nil)
	if err != nil || out != nil {
		t.Errorf("CopyRecord(nil) = %v, %v", out, err)
	}
}
