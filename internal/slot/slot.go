// Package slot defines the core value types of the slotted union-find: slot
// labels, class ids, applied ids, and permutations over slot positions.
package slot

import (
	"fmt"
	"strings"
)

// Slot is a symbolic parameter position. Its numerical value is meaningful
// only relative to an AppliedId's argument tuple and is subject to renaming.
type Slot int

// Id is an opaque, dense, monotonically assigned class identifier. Ids are
// never reused by a SUF instance.
type Id int

// String renders an id as "id{i}", matching the debug pretty-printer
// described in the behavioral contract.
func (i Id) String() string {
	return fmt.Sprintf("id%d", int(i))
}

// Permutation is a tuple of slot positions. Every permutation stored in a
// Group is a bijection on {0,...,len(p)-1}, but the type itself does not
// enforce that; add-time validation does.
type Permutation []Slot

// Equal reports whether p and q contain the same slots in the same order.
func (p Permutation) Equal(q Permutation) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p Permutation) Clone() Permutation {
	out := make(Permutation, len(p))
	copy(out, p)
	return out
}

// Identity returns the identity permutation of the given length.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = Slot(i)
	}
	return p
}

// Compose returns x∘y, defined by Compose(x, y)[i] = x[y[i]]. x and y must
// have equal length; callers within this module guarantee that invariant,
// since compose is only ever applied to permutations of the same class.
func Compose(x, y Permutation) Permutation {
	out := make(Permutation, len(y))
	for i := range y {
		out[i] = x[y[i]]
	}
	return out
}

// AppliedId is a class identifier together with a sequence of slot labels
// instantiating that class's slots. Equality is structural.
type AppliedId struct {
	ID   Id
	Args Permutation
}

// New constructs an AppliedId, copying args so the caller's slice may be
// reused or mutated afterward.
func New(id Id, args ...Slot) AppliedId {
	a := make(Permutation, len(args))
	copy(a, args)
	return AppliedId{ID: id, Args: a}
}

// Equal reports structural equality: same id, same argument tuple.
func (a AppliedId) Equal(b AppliedId) bool {
	return a.ID == b.ID && a.Args.Equal(b.Args)
}

// String renders "id{i}[s0, s1, ...]", or "id{i}" when Args is empty. This
// form is informational only, not part of the behavioral contract.
func (a AppliedId) String() string {
	if len(a.Args) == 0 {
		return a.ID.String()
	}
	parts := make([]string, len(a.Args))
	for i, s := range a.Args {
		parts[i] = fmt.Sprintf("%d", int(s))
	}
	return fmt.Sprintf("%s[%s]", a.ID, strings.Join(parts, ", "))
}

// Rewrite applies a leader-edge renaming σ to this applied id's arguments,
// producing AppliedId(target, (args[σ[0]], args[σ[1]], ...)). The result
// has len(σ) arguments, and every entry of σ must index into a.Args (σ may
// be longer than a.Args and may repeat entries); callers (SUF.Find)
// are responsible for that, since it is an invariant of a well-formed
// leader edge rather than something this pure helper can usefully recover
// from.
func (a AppliedId) Rewrite(target Id, sigma Permutation) AppliedId {
	args := make(Permutation, len(sigma))
	for i, p := range sigma {
		args[i] = a.Args[p]
	}
	return AppliedId{ID: target, Args: args}
}
