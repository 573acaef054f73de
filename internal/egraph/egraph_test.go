package egraph

import (
	"testing"

	"github.com/sufgraph/suf/internal/slot"
)

func TestAddHashconsesIdenticalShapes(t *testing.T) {
	e := New()
	x := e.SUF().Alloc(0)
	xid := slot.New(x)

	a := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{xid}})
	b := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{xid}})

	if !a.Equal(b) {
		t.Errorf("expected identical applications to hashcons to the same class, got %v and %v", a, b)
	}
}

func TestAddDistinguishesSymbols(t *testing.T) {
	e := New()
	x := slot.New(e.SUF().Alloc(0))

	a := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{x}})
	b := e.Add(FnNode{Symbol: "g", Args: []slot.AppliedId{x}})

	if a.ID == b.ID {
		t.Error("expected different symbols to hashcons to different classes")
	}
}

func TestAddCanonicalizesThroughFind(t *testing.T) {
	e := New()
	a := slot.New(e.SUF().Alloc(1), 0)
	b := slot.New(e.SUF().Alloc(1), 0)
	e.SUF().Union(a, b)

	fa := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{a}})
	fb := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{b}})

	if !fa.Equal(fb) {
		t.Errorf("expected f(a) and f(b) to hashcons together once a == b, got %v and %v", fa, fb)
	}
}

func TestAddArityMatchesDistinctSlotCount(t *testing.T) {
	e := New()
	c := slot.New(e.SUF().Alloc(3), 1, 2, 1)

	i := e.Add(FnNode{Symbol: "f", Args: []slot.AppliedId{c}})
	if got := e.SUF().Arity(i.ID); got != 2 {
		t.Errorf("expected arity 2 (slots 1 and 2 are distinct, 1 repeats), got %d", got)
	}
}

func TestUnionDoesNotPanicWithoutRebuild(t *testing.T) {
	e := New()
	a := slot.New(e.SUF().Alloc(1), 0)
	b := slot.New(e.SUF().Alloc(1), 0)
	e.Union(a, b)

	if !e.SUF().IsEqual(a, b) {
		t.Error("expected Union to still assert equality in the underlying union-find")
	}
}
