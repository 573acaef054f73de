package collections

import "testing"

func TestBitset_Basic(t *testing.T) {
	b := NewBitset(8)

	b.Set(0)
	b.Set(3)
	b.Set(7)

	if !b.Test(0) || !b.Test(3) || !b.Test(7) {
		t.Error("expected bits 0, 3, 7 to be set")
	}
	if b.Test(1) {
		t.Error("expected bit 1 to be clear")
	}
	if b.Count() != 3 {
		t.Errorf("expected count 3, got %d", b.Count())
	}
}

func TestBitset_Grow(t *testing.T) {
	b := NewBitset(4)

	b.Set(200)
	if !b.Test(200) {
		t.Error("expected bit 200 to be set after grow")
	}
}

func TestBitset_Or(t *testing.T) {
	a := NewBitset(8)
	b := NewBitset(8)

	a.Set(0)
	a.Set(3)
	b.Set(3)
	b.Set(5)

	a.Or(b)

	if !a.Test(0) || !a.Test(3) || !a.Test(5) {
		t.Error("Or operation failed")
	}
	if a.Count() != 3 {
		t.Errorf("expected count 3 after Or, got %d", a.Count())
	}
}

func TestBitset_Iterate(t *testing.T) {
	b := NewBitset(8)
	b.Set(1)
	b.Set(3)
	b.Set(6)

	var indices []int
	b.Iterate(func(i int) bool {
		indices = append(indices, i)
		return true
	})

	if len(indices) != 3 || indices[0] != 1 || indices[1] != 3 || indices[2] != 6 {
		t.Errorf("unexpected indices: %v", indices)
	}
}

func TestBitset_ToSlice(t *testing.T) {
	b := NewBitset(8)
	b.Set(2)
	b.Set(4)

	got := b.ToSlice()
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("unexpected slice: %v", got)
	}
}

func BenchmarkBitset_Set(b *testing.B) {
	bs := NewBitset(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.Set(i % 1024)
	}
}
