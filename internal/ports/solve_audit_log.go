package ports

import "context"

// SolveAuditEntry records the outcome of one Solve call for later
// inspection; it carries no behavior of its own.
type SolveAuditEntry struct {
	InstanceID      string
	NumColumns      int
	BestReducedCost float64
}

// Port: a boundary for recording solve outcomes.
type SolveAuditLog interface {
	Record(ctx context.Context, entry SolveAuditEntry) error
}
