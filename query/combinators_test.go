package query

import (
	"testing"

	"github.com/kbukum/lego/errors"
)

func TestCombinatorsSupported(t *testing.T) {
	if !CombinatorsSupported {
		t.Error("combinators should be reported as supported")
	}
}

func TestOr_Union(t *testing.T) {
	got := Or(
		FilterIn("city", []any{"X"}),
		FilterIn("city", []any{"Y"}),
	).Apply(people())

	want := []string{"Ana", "Ed", "Bo", "Di"}
	if !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestOr_NoDuplicates(t *testing.T) {
	got := Or(
		FilterIn("city", []any{"X", "Y"}),
		FilterIn("profession", []any{"engineer"}),
	).Apply(people())

	want := []string{"Ana", "Bo", "Di", "Ed", "Cy"}
	if !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestOr_KeepsEqualContentRecords(t *testing.T) {
	in := Collection{{"city": "X"}, {"city": "X"}}
	got := Or(FilterIn("city", []any{"X"}), FilterIn("city", []any{"X"})).Apply(in)
	if len(got) != 2 {
		t.Errorf("distinct records with equal content should both be kept, got %d", len(got))
	}
}

func TestOr_NoFilters(t *testing.T) {
	got := Or().Apply(people())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil collection, got %v", got)
	}
}

func TestAnd_Intersection(t *testing.T) {
	got := And(
		FilterIn("city", []any{"X"}),
		FilterIn("age", []any{30}),
	).Apply(people())

	if !equalStrings(names(got), []string{"Ana"}) {
		t.Errorf("got %v, want [Ana]", names(got))
	}
}

func TestAnd_NoFilters(t *testing.T) {
	in := people()
	got := And().Apply(in)
	if !equalStrings(names(got), names(in)) {
		t.Errorf("got %v, want input unchanged", names(got))
	}
	got[0] = Record{"name": "changed"}
	if in[0]["name"] != "Ana" {
		t.Error("And should not share its slice with the caller")
	}
}

func TestOr_OfAnd(t *testing.T) {
	got := Or(
		And(FilterIn("city", []any{"Y"}), FilterIn("age", []any{30})),
		FilterIn("profession", []any{"doctor", "student"}),
	).Apply(people())

	want := []string{"Di", "Ed"}
	if !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestCombinators_InvalidFilter(t *testing.T) {
	tests := []struct {
		name string
		tr   Transformation
		kind Kind
	}{
		{"or zero value", Or(FilterIn("a", nil), Transformation{}), KindOr},
		{"and nil formatter", And(Format("a", nil)), KindAnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tr.Err()
			if !errors.IsCode(err, errors.ErrCodeInvalidTransformation) {
				t.Fatalf("expected INVALID_TRANSFORMATION, got %v", err)
			}
			if tt.tr.Kind() != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, tt.tr.Kind())
			}
		})
	}
}
