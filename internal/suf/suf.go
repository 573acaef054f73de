// Package suf implements the slotted union-find: a union-find
// generalization where class members carry symbolic slot arguments, and
// merging two classes can fold away slots that turn out to be redundant
// or contribute a self-symmetry to the surviving class.
package suf

import (
	"fmt"
	"strings"

	"github.com/sufgraph/suf/internal/reorder"
	"github.com/sufgraph/suf/internal/slot"
	"github.com/sufgraph/suf/pkg/collections"
	"github.com/sufgraph/suf/pkg/errors"
)

// class holds one equivalence class's arity, self-symmetry group, and
// (once it has been merged into another class) a leader edge. A class
// with a non-nil leader is non-canonical: its group field is cleared,
// since the only symmetries worth reporting are those of the leader.
type class struct {
	arity  int
	group  *slot.Group
	leader *slot.AppliedId
}

// SUF is a slotted union-find instance. The zero value is not usable;
// construct with New. Not safe for concurrent use: callers that need
// concurrent access must serialize it themselves, matching the
// single-threaded, non-suspending resource model this package is
// designed against.
type SUF struct {
	classes []class
}

// New returns an empty slotted union-find with no classes allocated.
func New() *SUF {
	return &SUF{}
}

// NumClasses returns the number of classes ever allocated, including
// ones that have since been merged into another class.
func (u *SUF) NumClasses() int {
	return len(u.classes)
}

// Alloc allocates a fresh class of the given arity and returns its id.
// Ids are assigned densely starting at 0 and are never reused.
func (u *SUF) Alloc(arity int) slot.Id {
	if arity < 0 {
		errors.Fatalf(errors.CodeInvalidInput, "suf.alloc: negative arity %d", arity)
	}
	id := slot.Id(len(u.classes))
	u.classes = append(u.classes, class{
		arity: arity,
		group: slot.NewGroup(arity),
	})
	return id
}

// Arity returns the current arity of a class, following no leader edges:
// it is the arity of whatever class id currently names, which may be a
// non-canonical class that has since been folded into a lower-arity one.
func (u *SUF) Arity(id slot.Id) int {
	return u.class(id).arity
}

// Find resolves x to its canonical representative by chasing leader
// edges, rewriting x's arguments through each edge's slot renaming in
// turn. The returned applied id's class has no leader: either it was
// never merged, or it is the tail of the leader chain.
func (u *SUF) Find(x slot.AppliedId) slot.AppliedId {
	for {
		c := u.class(x.ID)
		if c.leader == nil {
			return x
		}
		x = x.Rewrite(c.leader.ID, c.leader.Args)
	}
}

// IsEqual reports whether x and y denote the same applied id: same
// canonical class, and the renamed argument tuples related by a member
// of that class's self-symmetry group.
func (u *SUF) IsEqual(x, y slot.AppliedId) bool {
	x = u.Find(x)
	y = u.Find(y)
	if x.ID != y.ID {
		return false
	}
	_, rx, ry := reorder.Pair(x, y)
	return u.class(rx.ID).group.Contains(ry.Args)
}

// Union asserts x == y, folding away redundant slots, recording a new
// self-symmetry, or installing a leader edge as needed to make the
// assertion hold.
func (u *SUF) Union(x, y slot.AppliedId) {
	for {
		x = u.Find(x)
		y = u.Find(y)

		onlyX, onlyY := argSetDifference(x.Args, y.Args)
		if len(onlyX) == 0 && len(onlyY) == 0 {
			break
		}
		// x and y disagree on which slots occur: whichever slots one
		// side has that the other lacks cannot affect the value, since
		// x and y are now asserted equal. Fold them away and retry.
		u.markSlotsRedundant(x, onlyX)
		u.markSlotsRedundant(y, onlyY)
	}

	if u.IsEqual(x, y) {
		return
	}

	_, x, y = reorder.Pair(x, y)

	if x.ID == y.ID {
		u.class(x.ID).group.Add(y.Args)
		return
	}
	u.addUFEdge(x.ID, y)
}

// addUFEdge installs x -> y as a leader edge, then transfers x's
// self-symmetries onto y's class by re-expressing each generator of x's
// group as an equation between two instances of y and adding the
// result as a generator of y's group. x's own group is discarded: it is
// no longer canonical, and its symmetries are now recoverable only
// through the leader.
func (u *SUF) addUFEdge(x slot.Id, y slot.AppliedId) {
	cx := u.class(x)
	cy := u.class(y.ID)

	identity := slot.Identity(cx.arity)
	perms := cx.group.Perms()

	// Install the leader edge first: the transfer loop below resolves
	// equations through x via Find, which must already see x as pointing
	// at y for those equations to land in y's class.
	leader := y
	cx.leader = &leader

	for _, p := range perms {
		lhs := u.Find(slot.AppliedId{ID: x, Args: identity})
		rhs := u.Find(slot.AppliedId{ID: x, Args: p})
		_, lhs, rhs = reorder.Pair(lhs, rhs)
		_ = lhs

		for _, s := range rhs.Args {
			if int(s) >= cy.arity {
				errors.Fatalf(errors.CodeSlotOutOfRange,
					"suf.addUFEdge: transferred symmetry references slot %d outside arity %d", s, cy.arity)
			}
		}

		cy.group.Add(rhs.Args)
	}

	cx.group = nil
}

// markSlotsRedundant removes slots from x's class: it finds x, expands
// the given external slot values to the orbit of their positions under
// x's class's symmetry group, and if any redundant positions result,
// allocates a lower-arity class and installs a leader edge onto it that
// drops those positions.
func (u *SUF) markSlotsRedundant(x slot.AppliedId, slots map[slot.Slot]struct{}) {
	if len(slots) == 0 {
		return
	}
	x = u.Find(x)
	c := u.class(x.ID)

	redundant := collections.NewBitset(c.arity)
	for s := range slots {
		pos := indexOf(x.Args, s)
		if pos < 0 {
			continue
		}
		redundant.Or(c.group.Orbit(slot.Slot(pos)))
	}
	if redundant.Count() == 0 {
		return
	}

	newArity := c.arity - redundant.Count()
	y := u.Alloc(newArity)
	args := make(slot.Permutation, 0, newArity)
	for s := 0; s < c.arity; s++ {
		if !redundant.Test(s) {
			args = append(args, slot.Slot(s))
		}
	}
	u.addUFEdge(x.ID, slot.AppliedId{ID: y, Args: args})
}

// ClassInfo is the exported, storage-agnostic view of one class, used
// by callers that need to serialize a SUF instance (snapshotting,
// debugging) without reaching into its internal representation.
type ClassInfo struct {
	ID              slot.Id
	Arity           int
	LeaderID        *slot.Id
	LeaderArgs      slot.Permutation
	GroupGenerators []slot.Permutation
}

// Snapshot returns a point-in-time, storage-agnostic view of every
// class. Non-canonical classes report their leader edge; canonical
// classes report their symmetry group's generating permutations.
func (u *SUF) Snapshot() []ClassInfo {
	out := make([]ClassInfo, len(u.classes))
	for i := range u.classes {
		c := &u.classes[i]
		info := ClassInfo{ID: slot.Id(i), Arity: c.arity}
		if c.leader != nil {
			leaderID := c.leader.ID
			info.LeaderID = &leaderID
			info.LeaderArgs = c.leader.Args.Clone()
		} else if c.group != nil {
			info.GroupGenerators = c.group.Perms()
		}
		out[i] = info
	}
	return out
}

// class returns a pointer to the stored class for id, panicking if id
// was never allocated by this instance.
func (u *SUF) class(id slot.Id) *class {
	if int(id) < 0 || int(id) >= len(u.classes) {
		errors.Fatalf(errors.CodeUnknownID, "suf: unknown class %s", id)
	}
	return &u.classes[id]
}

// indexOf returns the first position of s within args, or -1.
func indexOf(args slot.Permutation, s slot.Slot) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

// argSetDifference returns the slots occurring in x but not y, and
// those occurring in y but not x, each as a set keyed by slot value.
func argSetDifference(x, y slot.Permutation) (onlyX, onlyY map[slot.Slot]struct{}) {
	xs := make(map[slot.Slot]struct{}, len(x))
	for _, s := range x {
		xs[s] = struct{}{}
	}
	ys := make(map[slot.Slot]struct{}, len(y))
	for _, s := range y {
		ys[s] = struct{}{}
	}
	onlyX = make(map[slot.Slot]struct{})
	for s := range xs {
		if _, ok := ys[s]; !ok {
			onlyX[s] = struct{}{}
		}
	}
	onlyY = make(map[slot.Slot]struct{})
	for s := range ys {
		if _, ok := xs[s]; !ok {
			onlyY[s] = struct{}{}
		}
	}
	return onlyX, onlyY
}

// DebugString renders every class's arity, leader edge (if any), and
// symmetry group generators. It is a diagnostic aid only; its format is
// not part of this package's contract.
func (u *SUF) DebugString() string {
	var b strings.Builder
	for i := range u.classes {
		c := &u.classes[i]
		id := slot.Id(i)
		fmt.Fprintf(&b, "%s(arity=%d)", id, c.arity)
		if c.leader != nil {
			fmt.Fprintf(&b, " -> %s", c.leader)
		} else if c.group != nil {
			fmt.Fprintf(&b, " group=%v", c.group.Perms())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
