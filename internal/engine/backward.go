package engine

import "pricing-engine/internal/domain"

// runBackwardLabeling seeds a root label at the depot with time =
// tw_end[0] and propagates labels backward in time (§4.7), mirroring
// runForwardLabeling's resource logic. haltAt stops further expansion
// once time drops below it (the backward halfway cutoff); pass -Inf to
// disable the cutoff.
func runBackwardLabeling(
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
		Time:        data.TWEnd[domain.Depot],
		Load:        0,
		VisitedMask: rootMask,
		Active:      true,
	}
	rootIdx := arena.Add(root)
	store.Seed(domain.Depot, rootIdx)
	buckets.Push(root.Time, rootIdx)

	for b := buckets.NumBuckets() - 1; b >= 0; b-- {
		buckets.ForEach(b, func(labelIdx int) {
			curr := arena.Get(labelIdx)
			if !curr.Active {
				return
			}
			if curr.Time < haltAt {
				return
			}

			for _, arc := range graph.Outgoing(curr.NodeID) {
				prev := arc.Target

				if curr.VisitedMask.Test(prev) {
					continue
				}
				if forbidden.isForbidden(prev, curr.NodeID) {
					continue
				}

				newLoad := curr.Load + arc.Demand
				if newLoad > data.VehicleCapacity {
					continue
				}

				latestStart := curr.Time - arc.Duration
				if latestStart < data.TWStart[prev] {
					continue
				}
				newTime := latestStart
				if data.TWEnd[prev] < newTime {
					newTime = data.TWEnd[prev]
				}

				rc := arc.Cost
				if prev != domain.Depot {
					rc -= duals[prev]
				}

				candidate := Label{
					NodeID:      prev,
					ParentIndex: labelIdx,
					Cost:        curr.Cost + rc,
					Time:        newTime,
					Load:        newLoad,
					VisitedMask: curr.VisitedMask.ApplyNgRelaxation(ngMasks[prev], prev),
				}

				newIdx, ok := store.TryInsertBackward(prev, candidate)
				if !ok {
					continue
				}
				buckets.Push(newTime, newIdx)
			}
		})
	}
}
