package domain

import "testing"

func threeNodeData() ProblemData {
	return ProblemData{
		NumNodes:        3,
		VehicleCapacity: 2,
		Demands:         []int{0, 1, 1},
		ServiceTimes:    []float64{0, 0, 0},
		TWStart:         []float64{0, 0, 0},
		TWEnd:           []float64{100, 100, 100},
		DistMatrix: [][]float64{
			{0, 5, 5},
			{5, 0, 8},
			{5, 8, 0},
		},
		TimeMatrix: [][]float64{
			{0, 5, 5},
			{5, 0, 8},
			{5, 8, 0},
		},
		Neighbors: [][]int{
			{1, 2},
			{0, 2},
			{0, 1},
		},
	}
}

func TestNewProblemDataAccepts(t *testing.T) {
	if _, err := NewProblemData(threeNodeData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewProblemDataRejectsTooFewNodes(t *testing.T) {
	data := threeNodeData()
	data.NumNodes = 1
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for num_nodes < 2")
	}
}

func TestNewProblemDataRejectsDepotDemand(t *testing.T) {
	data := threeNodeData()
	data.Demands[Depot] = 3
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for a nonzero depot demand")
	}
}

func TestNewProblemDataRejectsCapacityBelowMaxDemand(t *testing.T) {
	data := threeNodeData()
	data.VehicleCapacity = 0
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for capacity below the largest demand")
	}
}

func TestNewProblemDataRejectsInvertedTimeWindow(t *testing.T) {
	data := threeNodeData()
	data.TWStart[1] = 50
	data.TWEnd[1] = 10
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for tw_start > tw_end")
	}
}

func TestNewProblemDataRejectsNegativeMatrixEntry(t *testing.T) {
	data := threeNodeData()
	data.DistMatrix[1][2] = -1
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for a negative distance")
	}
}

func TestNewProblemDataRejectsNonZeroDiagonal(t *testing.T) {
	data := threeNodeData()
	data.DistMatrix[1][1] = 4
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for a nonzero diagonal entry")
	}
}

func TestNewProblemDataRejectsSelfNeighbor(t *testing.T) {
	data := threeNodeData()
	data.Neighbors[1] = []int{1, 2}
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for a neighbor list containing itself")
	}
}

func TestNewProblemDataRejectsOutOfRangeNeighbor(t *testing.T) {
	data := threeNodeData()
	data.Neighbors[1] = []int{0, 9}
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for an out-of-range neighbor")
	}
}

func TestNewProblemDataRejectsWrongLength(t *testing.T) {
	data := threeNodeData()
	data.Demands = []int{0, 1}
	if _, err := NewProblemData(data); err == nil {
		t.Fatalf("expected an error for a demands slice of the wrong length")
	}
}

func TestBuildNgMasksDefaultsToFullUniverse(t *testing.T) {
	data, err := NewProblemData(threeNodeData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	masks := BuildNgMasks(data)
	if len(masks) != 3 {
		t.Fatalf("expected 3 masks, got %d", len(masks))
	}
	for i, m := range masks {
		for j := 0; j < 3; j++ {
			if !m.Test(j) {
				t.Fatalf("node %d: expected full universe, node %d missing", i, j)
			}
		}
	}
}

func TestBuildNgMasksHonorsExplicitLists(t *testing.T) {
	data := threeNodeData()
	data.NGNeighborLists = [][]int{{1}, {0}, {0}}

	built, err := NewProblemData(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	masks := BuildNgMasks(built)
	if !masks[1].Test(1) || !masks[1].Test(0) || masks[1].Test(2) {
		t.Fatalf("node 1 mask should be exactly {0,1}")
	}
}
