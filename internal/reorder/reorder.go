// Package reorder implements the shape reordering primitive: the
// canonical lexicographic slot relabeling applied to a tuple of applied
// ids before equation canonicalization and e-graph hashconsing.
package reorder

import "github.com/sufgraph/suf/internal/slot"

// Mapping is the slot-renaming produced by Reorder: the original slot
// that was mapped to each position, in first-encounter order.
type Mapping struct {
	// order lists the original slots in the order they were first seen.
	// order[i] is the original slot assigned the new label i.
	order []slot.Slot
	index map[slot.Slot]slot.Slot
}

// Len returns the number of distinct slots seen.
func (m *Mapping) Len() int {
	return len(m.order)
}

// At returns the original slot assigned the new label i.
func (m *Mapping) At(i int) slot.Slot {
	return m.order[i]
}

// Lookup returns the new label assigned to an original slot, and whether
// that slot was seen at all.
func (m *Mapping) Lookup(s slot.Slot) (slot.Slot, bool) {
	v, ok := m.index[s]
	return v, ok
}

// Reorder relabels the slots occurring in app, assigning the first-seen
// slot (scanning left to right within each applied id, and across
// applied ids in tuple order) the label 0, the second 1, and so on. It
// returns the mapping and the relabeled tuple; ids are left untouched,
// only Args is rewritten.
//
// The first applied id's arguments form the prefix (0,1,...,arity-1) if
// its slots are pairwise distinct. More generally the output is the
// lexicographically minimal relabeling achievable by a global injection
// of the occurring slots into the naturals. Reorder is a pure function:
// equal inputs produce equal outputs, and reordering an already-reordered
// tuple is a fixed point (it relabels 0->0, 1->1, ...).
func Reorder(app []slot.AppliedId) (*Mapping, []slot.AppliedId) {
	m := &Mapping{
		index: make(map[slot.Slot]slot.Slot),
	}
	out := make([]slot.AppliedId, len(app))

	for i, a := range app {
		args := make(slot.Permutation, len(a.Args))
		for j, s := range a.Args {
			label, ok := m.index[s]
			if !ok {
				label = slot.Slot(len(m.order))
				m.index[s] = label
				m.order = append(m.order, s)
			}
			args[j] = label
		}
		out[i] = slot.AppliedId{ID: a.ID, Args: args}
	}

	return m, out
}

// Pair is a convenience wrapper around Reorder for the common case of
// canonicalizing a two-element equation (x = y), as used throughout
// internal/suf.
func Pair(x, y slot.AppliedId) (*Mapping, slot.AppliedId, slot.AppliedId) {
	m, out := Reorder([]slot.AppliedId{x, y})
	return m, out[0], out[1]
}
