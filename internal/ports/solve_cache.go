package ports

import (
	"context"

	"pricing-engine/internal/domain"
	"pricing-engine/internal/engine"
)

// SolveCacheKey identifies one Solve call: the instance plus the exact
// duals, forbidden arcs and resolved engine config it was run with.
// Config must be included: a caller can override Bidirectional per
// request, and K comes from server configuration that can differ
// between processes sharing one cache; a monodirectional result must
// never be served to a bidirectional request (or a K=10 truncation to
// a K=50 one) just because the instance/duals/forbidden triple matches.
type SolveCacheKey struct {
	InstanceID string
	Duals      []float64
	Forbidden  []engine.ForbiddenArc
	Config     engine.Config
}

// Port: a boundary for memoizing Solve results. A cache miss is not an
// error; callers fall through to a live solve.
type SolveCache interface {
	Get(ctx context.Context, key SolveCacheKey) ([]domain.Column, bool, error)
	Set(ctx context.Context, key SolveCacheKey, columns []domain.Column) error
}
