package engine

import (
	"sort"

	"pricing-engine/internal/domain"
)

// CollectMonodirectional closes every active forward label back to the
// depot and keeps the ones with strictly negative reduced cost (§4.8,
// monodirectional completion).
func CollectMonodirectional(
	data domain.ProblemData,
	duals []float64,
	arena *LabelArena,
	store *DominanceStore,
	epsNeg float64,
) []domain.Column {
	var columns []domain.Column

	for v := 1; v < data.NumNodes; v++ {
		for _, idx := range store.At(v) {
			label := arena.Get(idx)
			if !label.Active {
				continue
			}

			closingDuration := data.ServiceTimes[v] + data.TimeMatrix[v][domain.Depot]
			arrival := label.Time + closingDuration
			if arrival > data.TWEnd[domain.Depot] {
				continue
			}

			finalCost := label.Cost + data.DistMatrix[v][domain.Depot] - duals[domain.Depot]
			if finalCost >= -epsNeg {
				continue
			}

			path := append(arena.ReconstructPath(idx), domain.Depot)
			columns = append(columns, buildColumn(data, path, finalCost, label.Load))
		}
	}

	return columns
}

// CollectBidirectional joins every pair of active forward/backward
// labels sharing a node m > 0 and keeps the feasible, elementary,
// strictly negative-reduced-cost joins (§4.8, bidirectional join).
func CollectBidirectional(
	data domain.ProblemData,
	duals []float64,
	fwdArena, bwdArena *LabelArena,
	fwdStore, bwdStore *DominanceStore,
	epsTime, epsNeg float64,
) []domain.Column {
	var columns []domain.Column

	for m := 1; m < data.NumNodes; m++ {
		for _, fIdx := range fwdStore.At(m) {
			lf := fwdArena.Get(fIdx)
			if !lf.Active {
				continue
			}

			for _, bIdx := range bwdStore.At(m) {
				lb := bwdArena.Get(bIdx)
				if !lb.Active {
					continue
				}

				if lf.Load+lb.Load-data.Demands[m] > data.VehicleCapacity {
					continue
				}
				if lf.Time > lb.Time+epsTime {
					continue
				}
				if lf.VisitedMask.IntersectsExcluding(lb.VisitedMask, m) {
					continue
				}

				total := lf.Cost + lb.Cost + duals[m]
				if total >= -epsNeg {
					continue
				}

				path := joinPaths(fwdArena, bwdArena, fIdx, lb.ParentIndex)
				load := lf.Load + lb.Load - data.Demands[m]
				columns = append(columns, buildColumn(data, path, total, load))
			}
		}
	}

	return columns
}

// joinPaths reconstructs a full route from a forward label ending at
// the join node and the backward label's parent chain (the join node
// itself excluded from the backward side, since the forward side
// already contributed it).
func joinPaths(fwdArena, bwdArena *LabelArena, fwdIdx, bwdParentIdx int) []int {
	path := fwdArena.ReconstructPath(fwdIdx)

	for bwdParentIdx != RootParent {
		l := bwdArena.Get(bwdParentIdx)
		path = append(path, l.NodeID)
		bwdParentIdx = l.ParentIndex
	}

	return path
}

func buildColumn(data domain.ProblemData, path []int, reducedCost float64, load int) domain.Column {
	col := domain.Column{NodeSequence: path, ReducedCost: reducedCost, Load: load}
	for k := 0; k+1 < len(path); k++ {
		from, to := path[k], path[k+1]
		col.Distance += data.DistMatrix[from][to]
		col.Duration += data.ServiceTimes[from] + data.TimeMatrix[from][to]
	}
	return col
}

// topK sorts columns by ascending reduced cost and truncates to k.
func topK(columns []domain.Column, k int) []domain.Column {
	sort.Slice(columns, func(i, j int) bool {
		return columns[i].ReducedCost < columns[j].ReducedCost
	})
	if len(columns) > k {
		columns = columns[:k]
	}
	return columns
}
