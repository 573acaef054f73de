package slot

import "testing"

func TestComposeDefinition(t *testing.T) {
	x := Permutation{1, 2, 0}
	y := Permutation{2, 0, 1}

	got := Compose(x, y)
	want := Permutation{0, 1, 2}
	if !got.Equal(want) {
		t.Errorf("Compose(%v, %v) = %v, want %v", x, y, got, want)
	}
}

func TestComposeWithIdentity(t *testing.T) {
	p := Permutation{2, 0, 1}
	id := Identity(3)

	if !Compose(id, p).Equal(p) {
		t.Errorf("Compose(identity, p) != p")
	}
	if !Compose(p, id).Equal(p) {
		t.Errorf("Compose(p, identity) != p")
	}
}

func TestAppliedIdEqual(t *testing.T) {
	a := New(3, 0, 1)
	b := New(3, 0, 1)
	c := New(3, 1, 0)

	if !a.Equal(b) {
		t.Error("expected equal applied ids")
	}
	if a.Equal(c) {
		t.Error("expected different argument order to be unequal")
	}
}

func TestAppliedIdString(t *testing.T) {
	a := New(7, 0, 1, 2)
	if got, want := a.String(), "id7[0, 1, 2]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	b := AppliedId{ID: 3}
	if got, want := b.String(), "id3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAppliedIdRewrite(t *testing.T) {
	// id7[a, b, c] -> id3[c, b] under leader edge id7[0,1,2] -> id3[2,1]
	x := New(7, 10, 20, 30)
	got := x.Rewrite(3, Permutation{2, 1})
	want := New(3, 30, 20)
	if !got.Equal(want) {
		t.Errorf("Rewrite = %v, want %v", got, want)
	}
}
