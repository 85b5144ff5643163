package engine

import "pricing-engine/internal/domain"

// runForwardLabeling seeds a root label at the depot and propagates
// labels outward (§4.6), honoring time, capacity, ng-memory and
// forbidden arcs. haltAt stops further expansion past that time (used
// for the bidirectional halfway cutoff); pass +Inf for the
// monodirectional fallback, which must explore the full horizon.
func runForwardLabeling(
	data domain.ProblemData,
	graph *BucketGraph,
	ngMasks []domain.Bitset,
	arena *LabelArena,
	store *DominanceStore,
	buckets *BucketIndex,
	duals []float64,
	forbidden *forbiddenTable,
	haltAt float64,
) {
	rootMask := domain.NewBitset()
	rootMask.Set(domain.Depot)

	root := Label{
		NodeID:      domain.Depot,
		ParentIndex: RootParent,
		Cost:        0,
		Time:        data.TWStart[domain.Depot],
		Load:        0,
		VisitedMask: rootMask,
		Active:      true,
	}
	rootIdx := arena.Add(root)
	store.Seed(domain.Depot, rootIdx)
	buckets.Push(root.Time, rootIdx)

	for b := 0; b < buckets.NumBuckets(); b++ {
		buckets.ForEach(b, func(labelIdx int) {
			curr := arena.Get(labelIdx)
			if !curr.Active {
				return
			}
			if curr.Time > haltAt {
				return
			}

			for _, arc := range graph.Outgoing(curr.NodeID) {
				j := arc.Target

				if curr.VisitedMask.Test(j) {
					continue
				}
				if forbidden.isForbidden(curr.NodeID, j) {
					continue
				}

				newLoad := curr.Load + arc.Demand
				if newLoad > data.VehicleCapacity {
					continue
				}

				arrival := curr.Time + arc.Duration
				startTime := arrival
				if data.TWStart[j] > startTime {
					startTime = data.TWStart[j]
				}
				if startTime > data.TWEnd[j] {
					continue
				}

				candidate := Label{
					NodeID:      j,
					ParentIndex: labelIdx,
					Cost:        curr.Cost + arc.Cost - duals[j],
					Time:        startTime,
					Load:        newLoad,
					VisitedMask: curr.VisitedMask.ApplyNgRelaxation(ngMasks[j], j),
				}

				newIdx, ok := store.TryInsertForward(j, candidate)
				if !ok {
					continue
				}
				buckets.Push(startTime, newIdx)
			}
		})
	}
}
