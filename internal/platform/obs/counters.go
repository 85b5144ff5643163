package obs

import "go.uber.org/atomic"

// Process-wide counters surfaced on /health. Atomic rather than
// mutex-guarded since every increment is a single scalar update, made
// by the service layer once per completed Solve.
var (
	SolvesTotal        atomic.Int64
	LabelsCreatedTotal atomic.Int64
	ColumnsFoundTotal  atomic.Int64
)

// Snapshot is the /health-friendly view of the counters above.
type Snapshot struct {
	SolvesTotal        int64 `json:"solves_total"`
	LabelsCreatedTotal int64 `json:"labels_created_total"`
	ColumnsFoundTotal  int64 `json:"columns_found_total"`
}

func CountersSnapshot() Snapshot {
	return Snapshot{
		SolvesTotal:        SolvesTotal.Load(),
		LabelsCreatedTotal: LabelsCreatedTotal.Load(),
		ColumnsFoundTotal:  ColumnsFoundTotal.Load(),
	}
}
