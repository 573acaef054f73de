package reorder

import (
	"testing"

	"github.com/sufgraph/suf/internal/slot"
)

func TestReorderExample(t *testing.T) {
	// grounded on the doc example in suf.py's reorder():
	// (id2[4, 2, 1], id5[0, 1, 3, 4]) -> (id2[0, 1, 2], id5[3, 2, 4, 0])
	in := []slot.AppliedId{
		slot.New(2, 4, 2, 1),
		slot.New(5, 0, 1, 3, 4),
	}

	_, out := Reorder(in)

	want0 := slot.New(2, 0, 1, 2)
	want1 := slot.New(5, 3, 2, 4, 0)

	if !out[0].Equal(want0) {
		t.Errorf("out[0] = %v, want %v", out[0], want0)
	}
	if !out[1].Equal(want1) {
		t.Errorf("out[1] = %v, want %v", out[1], want1)
	}
}

func TestReorderIsFixedPointOnCanonicalForm(t *testing.T) {
	in := []slot.AppliedId{slot.New(1, 0, 1, 2)}
	_, once := Reorder(in)
	_, twice := Reorder(once)

	if !once[0].Equal(twice[0]) {
		t.Errorf("reordering an already-canonical tuple changed it: %v -> %v", once[0], twice[0])
	}
}

func TestReorderFirstIdGetsIdentityWhenDistinct(t *testing.T) {
	in := []slot.AppliedId{slot.New(9, 7, 3, 5)}
	_, out := Reorder(in)

	want := slot.New(9, 0, 1, 2)
	if !out[0].Equal(want) {
		t.Errorf("out[0] = %v, want %v", out[0], want)
	}
}

func TestMappingLookup(t *testing.T) {
	m, _ := Reorder([]slot.AppliedId{slot.New(1, 5, 9)})

	got, ok := m.Lookup(9)
	if !ok || got != 1 {
		t.Errorf("Lookup(9) = (%v, %v), want (1, true)", got, ok)
	}
	if _, ok := m.Lookup(42); ok {
		t.Error("expected Lookup of an unseen slot to report false")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
