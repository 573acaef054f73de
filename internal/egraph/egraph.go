// Package egraph implements the minimal e-graph collaborator that sits
// on top of a slotted union-find: a hashcons from canonicalized
// uninterpreted function applications to the class representing their
// value.
package egraph

import (
	"strconv"
	"strings"

	"github.com/sufgraph/suf/internal/reorder"
	"github.com/sufgraph/suf/internal/slot"
	"github.com/sufgraph/suf/internal/suf"
)

// FnNode is an uninterpreted function e-node: a symbol applied to a
// tuple of child applied ids.
type FnNode struct {
	Symbol string
	Args   []slot.AppliedId
}

// EGraph hashconses FnNodes over a slotted union-find. rebuild is a
// no-op: restoring hashcons consistency after a
// Union that changes a child's canonical form is out of scope for this
// collaborator (design note, spec §9); callers that need congruence
// closure must re-add affected nodes themselves.
type EGraph struct {
	suf      *suf.SUF
	hashcons map[string]slot.AppliedId
}

// New returns an empty e-graph backed by a fresh slotted union-find.
func New() *EGraph {
	return &EGraph{
		suf:      suf.New(),
		hashcons: make(map[string]slot.AppliedId),
	}
}

// SUF exposes the underlying slotted union-find, for callers that need
// to assert additional equalities directly or inspect class structure.
func (e *EGraph) SUF() *suf.SUF {
	return e.suf
}

// Add canonicalizes n's children through Find, computes n's shape by
// reordering the canonicalized children's slots, and returns the
// existing class for that shape if one is already hashconsed.
// Otherwise it allocates a fresh class of arity equal to the number of
// distinct slots appearing in the shape, records it, and returns it.
func (e *EGraph) Add(n FnNode) slot.AppliedId {
	found := make([]slot.AppliedId, len(n.Args))
	for i, a := range n.Args {
		found[i] = e.suf.Find(a)
	}

	mapping, shape := reorder.Reorder(found)
	key := hashconsKey(n.Symbol, shape)

	if i, ok := e.hashcons[key]; ok {
		return i
	}

	arity := mapping.Len()
	id := e.suf.Alloc(arity)
	i := slot.New(id, slot.Identity(arity)...)
	e.hashcons[key] = i
	return i
}

// Union asserts x == y in the underlying slotted union-find. It does
// not attempt to restore hashcons consistency afterward; see the
// EGraph doc comment.
func (e *EGraph) Union(x, y slot.AppliedId) {
	e.suf.Union(x, y)
	e.rebuild()
}

// rebuild is a deliberate no-op. A full implementation would
// re-canonicalize every hashconsed node's children and merge any
// classes that collide under the new canonical shapes, iterating to a
// fixed point; that congruence-closure pass is not part of this
// collaborator's contract.
func (e *EGraph) rebuild() {
}

// Find canonicalizes an applied id through the underlying slotted
// union-find, without touching the hashcons.
func (e *EGraph) Find(x slot.AppliedId) slot.AppliedId {
	return e.suf.Find(x)
}

// hashconsKey renders a canonicalized shape as a comparable map key.
// Node identity depends on the symbol and the structure of its
// (already-reordered) children, not on any particular slot labeling
// beyond what reorder already canonicalized.
func hashconsKey(symbol string, shape []slot.AppliedId) string {
	var b strings.Builder
	b.WriteString(symbol)
	for _, a := range shape {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(int(a.ID)))
		b.WriteByte(':')
		for j, s := range a.Args {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(int(s)))
		}
	}
	return b.String()
}
