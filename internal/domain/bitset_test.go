package domain

import "testing"

func TestBitsetSetTest(t *testing.T) {
	b := NewBitset()
	if b.Test(3) {
		t.Fatalf("fresh bitset should not contain 3")
	}
	b.Set(3)
	if !b.Test(3) {
		t.Fatalf("expected 3 to be set")
	}
	if b.Test(4) {
		t.Fatalf("did not expect 4 to be set")
	}
}

func TestBitsetIsSubsetOf(t *testing.T) {
	a := NewBitset()
	a.Set(0)
	a.Set(2)

	b := NewBitset()
	b.Set(0)
	b.Set(2)
	b.Set(3)

	if !a.IsSubsetOf(b) {
		t.Fatalf("expected {0,2} to be a subset of {0,2,3}")
	}
	if b.IsSubsetOf(a) {
		t.Fatalf("did not expect {0,2,3} to be a subset of {0,2}")
	}

	empty := NewBitset()
	if !empty.IsSubsetOf(a) {
		t.Fatalf("empty set must be a subset of everything")
	}
}

func TestBitsetApplyNgRelaxation(t *testing.T) {
	visited := NewBitset()
	visited.Set(0)
	visited.Set(2)
	visited.Set(5)

	ngMask := NewBitset()
	ngMask.Set(0)
	ngMask.Set(7)

	next := visited.ApplyNgRelaxation(ngMask, 7)

	if !next.Test(7) {
		t.Fatalf("expected next node 7 to always be set")
	}
	if !next.Test(0) {
		t.Fatalf("expected 0 to survive the AND with ng mask")
	}
	if next.Test(2) || next.Test(5) {
		t.Fatalf("expected 2 and 5 to be forgotten by the ng mask")
	}

	if visited.Test(7) {
		t.Fatalf("original bitset must not be mutated by ApplyNgRelaxation")
	}
}

func TestBitsetIntersectsExcluding(t *testing.T) {
	a := NewBitset()
	a.Set(0)
	a.Set(2)
	a.Set(4)

	b := NewBitset()
	b.Set(0)
	b.Set(4)
	b.Set(6)

	if a.IntersectsExcluding(b, 4) {
		t.Fatalf("shared node 4 is excluded, shared depot is excluded: should not intersect")
	}

	a.Set(6)
	if !a.IntersectsExcluding(b, 4) {
		t.Fatalf("expected shared node 6 to trigger an intersection")
	}
}

func TestBitsetEqualAndClone(t *testing.T) {
	a := NewBitset()
	a.Set(1)
	a.Set(3)

	clone := a.Clone()
	if !a.Equal(clone) {
		t.Fatalf("clone must compare equal to its source")
	}

	clone.Set(9)
	if a.Equal(clone) {
		t.Fatalf("mutating the clone must not affect the source")
	}
	if a.Test(9) {
		t.Fatalf("source must be unaffected by a mutation on its clone")
	}
}
