package query

import (
	"testing"

	"github.com/kbukum/lego/errors"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantLen int
		wantErr bool
	}{
		{"collection", people(), 5, false},
		{"record slice", []Record{{"a": 1}}, 1, false},
		{"map slice", []map[string]any{{"a": 1}, {"b": 2}}, 2, false},
		{"decoded json", []any{map[string]any{"a": 1}}, 1, false},
		{"empty", []any{}, 0, false},
		{"nil", nil, 0, true},
		{"object", map[string]any{"a": 1}, 0, true},
		{"scalar element", []any{map[string]any{}, 3}, 0, true},
		{"string", "records", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.in)
			if tt.wantErr {
				if !errors.IsCode(err, errors.ErrCodeInvalidCollection) {
					t.Fatalf("expected INVALID_COLLECTION, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got.Len(), tt.wantLen)
			}
		})
	}
}

func TestFromValue_ElementIndex(t *testing.T) {
	_, err := FromValue([]any{map[string]any{}, map[string]any{}, "x"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Details["index"] != 2 {
		t.Errorf("index = %v, want 2", appErr.Details["index"])
	}
}

func TestRecord_Get(t *testing.T) {
	r := Record{"a": nil}
	if v, ok := r.Get("a"); !ok || v != nil {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := r.Get("b"); ok {
		t.Error("Get(b) should report a missing field")
	}
}

func TestKind(t *testing.T) {
	for _, k := range AllKinds() {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
		if _, ok := DefaultPriorities().Rank(k); !ok {
			t.Errorf("%s has no default rank", k)
		}
	}
	if Kind("map").IsValid() {
		t.Error("unknown kind reported valid")
	}
	if Undefined.(interface{ String() string }).String() != "undefined" {
		t.Error("unexpected Undefined string")
	}
}
