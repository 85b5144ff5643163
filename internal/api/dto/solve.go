package dto

// ForbiddenArcRequest is one caller-supplied excluded arc.
type ForbiddenArcRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type SolveRequest struct {
	Duals         []float64             `json:"duals"`
	ForbiddenArcs []ForbiddenArcRequest `json:"forbidden_arcs"`
	Bidirectional *bool                 `json:"bidirectional"`
}

type ColumnResponse struct {
	NodeSequence []int   `json:"node_sequence"`
	ReducedCost  float64 `json:"reduced_cost"`
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration"`
	Load         int     `json:"load"`
}

type SolveResponse struct {
	Columns []ColumnResponse `json:"columns"`
}
