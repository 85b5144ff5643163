package ports

import (
	"context"

	"pricing-engine/internal/domain"
)

// Port: a boundary for persisting and retrieving ProblemData instances.
type InstanceRepository interface {
	// Retrieve a previously saved instance by id.
	Get(ctx context.Context, id string) (domain.ProblemData, error)
	// Persist data under id, overwriting any existing instance.
	Save(ctx context.Context, id string, data domain.ProblemData) error
}
