package engine

import (
	"testing"

	"pricing-engine/internal/domain"
)

func maskOf(nodes ...int) domain.Bitset {
	m := domain.NewBitset()
	for _, n := range nodes {
		m.Set(n)
	}
	return m
}

func TestDominanceStoreDiscardsDominatedCandidate(t *testing.T) {
	arena := NewLabelArena(8)
	store := NewDominanceStore(arena, 4, 1e-6, 1e-6)

	a := Label{NodeID: 2, Cost: 1, Time: 5, Load: 1, VisitedMask: maskOf(0, 2)}
	idxA, ok := store.TryInsertForward(2, a)
	if !ok {
		t.Fatalf("expected A to be inserted as the first label at node 2")
	}

	b := Label{NodeID: 2, Cost: 2, Time: 6, Load: 1, VisitedMask: maskOf(0, 2)}
	_, ok = store.TryInsertForward(2, b)
	if ok {
		t.Fatalf("expected B to be dominated by A and discarded")
	}

	if !arena.Get(idxA).Active {
		t.Fatalf("A should remain active: B never dominated it")
	}
}

func TestDominanceStoreRequiresMaskSubset(t *testing.T) {
	arena := NewLabelArena(8)
	store := NewDominanceStore(arena, 4, 1e-6, 1e-6)

	a := Label{NodeID: 2, Cost: 0, Time: 5, Load: 0, VisitedMask: maskOf(0, 2, 3)}
	idxA, ok := store.TryInsertForward(2, a)
	if !ok {
		t.Fatalf("expected A to be inserted")
	}

	b := Label{NodeID: 2, Cost: 1, Time: 6, Load: 0, VisitedMask: maskOf(0, 2)}
	idxB, ok := store.TryInsertForward(2, b)
	if !ok {
		t.Fatalf("A's mask {0,2,3} is not a subset of B's mask {0,2}: B must survive despite A's better cost/time/load")
	}

	if !arena.Get(idxA).Active || !arena.Get(idxB).Active {
		t.Fatalf("neither label should be tombstoned: A's mask is not a subset of B's, and B's cost and time are worse than A's")
	}
}

func TestDominanceStoreTombstonesDominatedIncumbent(t *testing.T) {
	arena := NewLabelArena(8)
	store := NewDominanceStore(arena, 4, 1e-6, 1e-6)

	worse := Label{NodeID: 1, Cost: 5, Time: 10, Load: 2, VisitedMask: maskOf(0, 1)}
	idxWorse, _ := store.TryInsertForward(1, worse)

	better := Label{NodeID: 1, Cost: 1, Time: 2, Load: 0, VisitedMask: maskOf(0, 1)}
	idxBetter, ok := store.TryInsertForward(1, better)
	if !ok {
		t.Fatalf("expected the strictly better label to be inserted")
	}

	if arena.Get(idxWorse).Active {
		t.Fatalf("expected the incumbent to be tombstoned once dominated")
	}
	if !arena.Get(idxBetter).Active {
		t.Fatalf("expected the new label to remain active")
	}
}

func TestDominanceStoreBackwardTimeDirectionReversed(t *testing.T) {
	arena := NewLabelArena(8)
	store := NewDominanceStore(arena, 4, 1e-6, 1e-6)

	// Backward dominance favors a later (larger) time, the mirror image
	// of forward's preference for an earlier time.
	later := Label{NodeID: 1, Cost: 1, Time: 20, Load: 0, VisitedMask: maskOf(0, 1)}
	idxLater, ok := store.TryInsertBackward(1, later)
	if !ok {
		t.Fatalf("expected the later-time label to be inserted first")
	}

	earlier := Label{NodeID: 1, Cost: 2, Time: 5, Load: 0, VisitedMask: maskOf(0, 1)}
	_, ok = store.TryInsertBackward(1, earlier)
	if ok {
		t.Fatalf("expected the earlier-time, costlier label to be dominated under backward rules")
	}

	if !arena.Get(idxLater).Active {
		t.Fatalf("the later-time label should remain active")
	}
}
