package engine

import "pricing-engine/internal/domain"

// RootParent is the sentinel ParentIndex of a root label seeded at the
// depot.
const RootParent = -1

// Label is a dynamic record in the arena: a partial path's resource
// state at a node, plus a back-pointer to the label it was extended
// from.
type Label struct {
	NodeID      int
	ParentIndex int
	Cost        float64
	Time        float64
	Load        int
	VisitedMask domain.Bitset
	Active      bool
}

// LabelArena is an append-only pool of labels addressed by stable
// integer index. Labels are never removed and never change index; dominance
// marks them inactive (tombstone) instead, so parent chains stored in
// bucket indices and dominance stores never dangle.
type LabelArena struct {
	labels []Label
}

// NewLabelArena returns an arena pre-sized for capacityHint labels.
// Reserved capacity is a hint only: the arena grows past it without
// invalidating any previously returned index.
func NewLabelArena(capacityHint int) *LabelArena {
	return &LabelArena{labels: make([]Label, 0, capacityHint)}
}

// Add appends label to the arena and returns its stable index.
func (a *LabelArena) Add(label Label) int {
	a.labels = append(a.labels, label)
	return len(a.labels) - 1
}

// Get returns a pointer to the label at idx. The pointer is valid until
// the next Add or Reset: Add may move the backing array, after which a
// write through an older pointer no longer reaches the arena.
func (a *LabelArena) Get(idx int) *Label {
	return &a.labels[idx]
}

// Len returns the number of labels currently in the arena.
func (a *LabelArena) Len() int {
	return len(a.labels)
}

// Reset clears the arena for the next solve. Capacity is retained.
func (a *LabelArena) Reset() {
	a.labels = a.labels[:0]
}

// ReconstructPath walks the parent chain starting at idx back to the
// root label and returns the node sequence in traversal order (root
// first). This is the path reconstruction law from the labeling
// invariants: re-walking a returned label's parent chain must reproduce
// its route exactly.
func (a *LabelArena) ReconstructPath(idx int) []int {
	var reversed []int
	for idx != RootParent {
		l := a.Get(idx)
		reversed = append(reversed, l.NodeID)
		idx = l.ParentIndex
	}
	path := make([]int, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}
