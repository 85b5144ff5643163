package engine

import "pricing-engine/internal/domain"

// BucketGraph is a precomputed outgoing-arc adjacency per node, after
// static capacity and time-window pruning. The forward and backward
// variants are built once at engine construction and never mutated
// across solves.
type BucketGraph struct {
	outgoing [][]domain.Arc
}

// Outgoing returns the precomputed arcs leaving node.
func (g *BucketGraph) Outgoing(node int) []domain.Arc {
	return g.outgoing[node]
}

// BuildForwardGraph applies the §4.2 build contract: for each ordered
// pair (i, j) with j a candidate neighbor of i, drop the pair on a
// capacity or earliest-feasibility cut, otherwise emit a forward Arc
// into outgoing[i]. No dynamic duals enter this build.
func BuildForwardGraph(data domain.ProblemData) *BucketGraph {
	g := &BucketGraph{outgoing: make([][]domain.Arc, data.NumNodes)}

	for i := 0; i < data.NumNodes; i++ {
		for _, j := range data.Neighbors[i] {
			if i == j || j == domain.Depot {
				// The depot is never an intermediate extension target:
				// returning to it is handled exclusively by the
				// closing/merge step, never by generic adjacency.
				continue
			}
			if !physicalArcFeasible(data, i, j) {
				continue
			}

			g.outgoing[i] = append(g.outgoing[i], domain.Arc{
				Target:   j,
				Cost:     data.DistMatrix[i][j],
				Duration: data.ServiceTimes[i] + data.TimeMatrix[i][j],
				Demand:   data.Demands[j],
				Distance: data.DistMatrix[i][j],
			})
		}
	}

	return g
}

// BuildBackwardGraph mirrors BuildForwardGraph: for each physical arc
// i -> j surviving the same two cuts, an arc targeting i is emitted
// into outgoing[j], since backward search extends a label at j back to
// i.
func BuildBackwardGraph(data domain.ProblemData) *BucketGraph {
	g := &BucketGraph{outgoing: make([][]domain.Arc, data.NumNodes)}

	for i := 0; i < data.NumNodes; i++ {
		if i == domain.Depot {
			// Mirrors the forward exclusion: a backward label never
			// extends past the depot except through the merge step.
			continue
		}
		for _, j := range data.Neighbors[i] {
			if i == j {
				continue
			}
			if !physicalArcFeasible(data, i, j) {
				continue
			}

			g.outgoing[j] = append(g.outgoing[j], domain.Arc{
				Target:   i,
				Cost:     data.DistMatrix[i][j],
				Duration: data.ServiceTimes[i] + data.TimeMatrix[i][j],
				Demand:   data.Demands[i],
				Distance: data.DistMatrix[i][j],
			})
		}
	}

	return g
}

func physicalArcFeasible(data domain.ProblemData, i, j int) bool {
	if data.Demands[i]+data.Demands[j] > data.VehicleCapacity {
		return false
	}
	earliestArrival := data.TWStart[i] + data.ServiceTimes[i] + data.TimeMatrix[i][j]
	return earliestArrival <= data.TWEnd[j]
}
