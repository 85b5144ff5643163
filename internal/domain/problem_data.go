package domain

import "fmt"

// ProblemData is the immutable VRPTW instance an engine is built from:
// node count, capacity, demands, service times, time windows, distance
// and time matrices, candidate adjacency and ng-neighbor sets. It is
// built once per engine construction and never mutated across solves.
type ProblemData struct {
	NumNodes        int
	VehicleCapacity int
	Demands         []int
	ServiceTimes    []float64
	TWStart         []float64
	TWEnd           []float64
	DistMatrix      [][]float64
	TimeMatrix      [][]float64
	Neighbors       [][]int
	NGNeighborLists [][]int
}

// NewProblemData validates data and returns it ready for engine
// construction. Invalid instance data is rejected here with a terminal
// error, never at solve time.
func NewProblemData(data ProblemData) (ProblemData, error) {
	n := data.NumNodes

	if n < 2 {
		return ProblemData{}, fmt.Errorf("new problem data: num_nodes must be >= 2, got %d", n)
	}
	if data.VehicleCapacity < 0 {
		return ProblemData{}, fmt.Errorf("new problem data: vehicle_capacity must be >= 0, got %d", data.VehicleCapacity)
	}

	if err := requireLen("demands", len(data.Demands), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("service_times", len(data.ServiceTimes), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("tw_start", len(data.TWStart), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("tw_end", len(data.TWEnd), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("dist_matrix", len(data.DistMatrix), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("time_matrix", len(data.TimeMatrix), n); err != nil {
		return ProblemData{}, err
	}
	if err := requireLen("neighbors", len(data.Neighbors), n); err != nil {
		return ProblemData{}, err
	}
	if len(data.NGNeighborLists) != 0 {
		if err := requireLen("ng_neighbor_lists", len(data.NGNeighborLists), n); err != nil {
			return ProblemData{}, err
		}
	}

	if data.Demands[Depot] != 0 {
		return ProblemData{}, fmt.Errorf("new problem data: demands[0] (depot) must be 0, got %d", data.Demands[Depot])
	}

	maxDemand := 0
	for i, d := range data.Demands {
		if d < 0 {
			return ProblemData{}, fmt.Errorf("new problem data: demands[%d] must be >= 0, got %d", i, d)
		}
		if d > maxDemand {
			maxDemand = d
		}
	}
	if data.VehicleCapacity < maxDemand {
		return ProblemData{}, fmt.Errorf("new problem data: vehicle_capacity (%d) must be >= max demand (%d)", data.VehicleCapacity, maxDemand)
	}

	for i, st := range data.ServiceTimes {
		if st < 0 {
			return ProblemData{}, fmt.Errorf("new problem data: service_times[%d] must be >= 0, got %f", i, st)
		}
	}

	for i := 0; i < n; i++ {
		if data.TWStart[i] > data.TWEnd[i] {
			return ProblemData{}, fmt.Errorf("new problem data: tw_start[%d] (%f) must be <= tw_end[%d] (%f)", i, data.TWStart[i], i, data.TWEnd[i])
		}
	}

	if err := validateMatrix("dist_matrix", data.DistMatrix, n); err != nil {
		return ProblemData{}, err
	}
	if err := validateMatrix("time_matrix", data.TimeMatrix, n); err != nil {
		return ProblemData{}, err
	}

	for i, nbrs := range data.Neighbors {
		for _, j := range nbrs {
			if j == i {
				return ProblemData{}, fmt.Errorf("new problem data: neighbors[%d] must exclude self, found %d", i, j)
			}
			if j < 0 || j >= n {
				return ProblemData{}, fmt.Errorf("new problem data: neighbors[%d] contains out-of-range node %d", i, j)
			}
		}
	}

	for i, nbrs := range data.NGNeighborLists {
		for _, j := range nbrs {
			if j < 0 || j >= n {
				return ProblemData{}, fmt.Errorf("new problem data: ng_neighbor_lists[%d] contains out-of-range node %d", i, j)
			}
		}
	}

	return data, nil
}

func requireLen(field string, got, want int) error {
	if got != want {
		return fmt.Errorf("new problem data: %s has length %d, want %d", field, got, want)
	}
	return nil
}

func validateMatrix(field string, m [][]float64, n int) error {
	if err := requireLen(field, len(m), n); err != nil {
		return err
	}
	for i, row := range m {
		if err := requireLen(fmt.Sprintf("%s[%d]", field, i), len(row), n); err != nil {
			return err
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("new problem data: %s[%d][%d] must be >= 0, got %f", field, i, j, v)
			}
			if i == j && v != 0 {
				return fmt.Errorf("new problem data: %s[%d][%d] diagonal must be 0, got %f", field, i, j, v)
			}
		}
	}
	return nil
}
