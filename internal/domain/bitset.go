package domain

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Depot is the node id shared by every route's origin and terminus.
const Depot = 0

// Bitset is a bit vector over node ids, used as ng-relaxed visitation
// memory on a Label. Backed by a compressed roaring bitmap rather than a
// hand-rolled word array: node ids are sparse relative to int capacity,
// and roaring's container-level AND/cardinality ops give us the
// word-parallel subset test the labeling hot path needs for free.
type Bitset struct {
	bm *roaring.Bitmap
}

// NewBitset returns an empty Bitset.
func NewBitset() Bitset {
	return Bitset{bm: roaring.New()}
}

// Set marks node i as present. Idempotent.
func (b Bitset) Set(i int) {
	b.bm.Add(uint32(i))
}

// Test reports whether node i is present.
func (b Bitset) Test(i int) bool {
	return b.bm.Contains(uint32(i))
}

// IsSubsetOf reports whether every bit set in b is also set in other.
func (b Bitset) IsSubsetOf(other Bitset) bool {
	card := b.bm.GetCardinality()
	if card == 0 {
		return true
	}
	return b.bm.AndCardinality(other.bm) == card
}

// ApplyNgRelaxation returns (b AND ngMask) OR {nextNode}: the sole update
// rule for ng-route memory when a label extends to nextNode.
func (b Bitset) ApplyNgRelaxation(ngMask Bitset, nextNode int) Bitset {
	res := b.bm.Clone()
	res.And(ngMask.bm)
	res.Add(uint32(nextNode))
	return Bitset{bm: res}
}

// IntersectsExcluding reports whether b AND other has any bit set other
// than the depot and excludedNode. Used at a bidirectional merge point to
// reject joins that share any non-boundary node.
func (b Bitset) IntersectsExcluding(other Bitset, excludedNode int) bool {
	inter := roaring.And(b.bm, other.bm)
	inter.Remove(uint32(Depot))
	inter.Remove(uint32(excludedNode))
	return !inter.IsEmpty()
}

// Equal reports word-wise (here: container-wise) equality.
func (b Bitset) Equal(other Bitset) bool {
	return b.bm.Equals(other.bm)
}

// Clone returns an independent copy of b.
func (b Bitset) Clone() Bitset {
	return Bitset{bm: b.bm.Clone()}
}
