package slot

import (
	"github.com/sufgraph/suf/pkg/collections"
	"github.com/sufgraph/suf/pkg/errors"
)

// Group is the permutation group of self-symmetries of one class's slot
// arguments: a set of permutations, closed under composition, that always
// contains the identity. It is the naive reference representation from
// the source material — an explicit set of tuples — rather than a
// Schreier-Sims stabilizer chain, since the arities this system deals
// with are small (design note, spec §9).
type Group struct {
	arity int
	perms []Permutation
	seen  map[string]struct{}
}

// NewGroup returns a group over {0,...,arity-1} containing only the
// identity permutation.
func NewGroup(arity int) *Group {
	g := &Group{
		arity: arity,
		seen:  make(map[string]struct{}),
	}
	g.insert(Identity(arity))
	return g
}

// Arity returns the slot count this group's permutations operate over.
func (g *Group) Arity() int {
	return g.arity
}

// Len returns the number of permutations currently in the group.
func (g *Group) Len() int {
	return len(g.perms)
}

// Perms returns the group's permutations. The returned slice is owned by
// the caller only for reading; it must not be mutated.
func (g *Group) Perms() []Permutation {
	return g.perms
}

// Add inserts a permutation of matching length into the group, then
// closes the group under composition until a fixed point. A length
// mismatch is a programming-contract violation: the caller has presented
// a symmetry equation for the wrong class.
func (g *Group) Add(p Permutation) {
	if len(p) != g.arity {
		errors.Fatalf(errors.CodeArityMismatch,
			"group.add: permutation length %d does not match arity %d", len(p), g.arity)
	}
	if !g.insert(p) {
		return
	}
	g.close()
}

// Contains reports whether p is a member of the group.
func (g *Group) Contains(p Permutation) bool {
	_, ok := g.seen[key(p)]
	return ok
}

// Orbit returns the set { p[s] | p in G } for a slot index s, always
// including s itself, as a Bitset sized to the group's arity.
func (g *Group) Orbit(s Slot) *collections.Bitset {
	orbit := collections.NewBitset(g.arity)
	orbit.Set(int(s))
	for _, p := range g.perms {
		orbit.Set(int(p[s]))
	}
	return orbit
}

// close repeatedly computes { x o y | x,y in G } and merges it into G
// until the size stabilizes. O(|G|^2) per iteration, acceptable because
// the arities encountered in practice are small (spec §4.A).
func (g *Group) close() {
	for {
		before := len(g.perms)
		// Snapshot the current permutation list: new compositions must
		// not be composed again within the same pass, only across passes.
		current := g.perms
		for _, x := range current {
			for _, y := range current {
				g.insert(Compose(x, y))
			}
		}
		if len(g.perms) == before {
			return
		}
	}
}

// insert adds p to the group if not already present, returning whether it
// was newly inserted.
func (g *Group) insert(p Permutation) bool {
	k := key(p)
	if _, ok := g.seen[k]; ok {
		return false
	}
	g.seen[k] = struct{}{}
	g.perms = append(g.perms, p.Clone())
	return true
}

// key produces a comparable map key for a permutation.
func key(p Permutation) string {
	buf := make([]byte, 0, len(p)*4)
	for _, s := range p {
		buf = appendInt(buf, int(s))
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
