package dto

// InstanceRequest is the wire shape of a ProblemData the caller wants
// persisted. Field names mirror spec.md's construction table (§6.1)
// directly rather than the Go-side struct's capitalization.
type InstanceRequest struct {
	ID              string      `json:"id"`
	NumNodes        int         `json:"num_nodes"`
	VehicleCapacity int         `json:"vehicle_capacity"`
	Demands         []int       `json:"demands"`
	ServiceTimes    []float64   `json:"service_times"`
	TWStart         []float64   `json:"tw_start"`
	TWEnd           []float64   `json:"tw_end"`
	DistMatrix      [][]float64 `json:"dist_matrix"`
	TimeMatrix      [][]float64 `json:"time_matrix"`
	Neighbors       [][]int     `json:"neighbors"`
	NGNeighborLists [][]int     `json:"ng_neighbor_lists"`
}

type InstanceResponse struct {
	ID string `json:"id"`
}
