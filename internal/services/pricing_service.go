package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"pricing-engine/internal/domain"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/platform/obs"
	"pricing-engine/internal/ports"
)

// solveSem bounds the number of concurrently in-flight Solve calls
// server-wide. Each call is itself single-threaded; this only limits
// how many independent solves run at once, the same role the
// hand-rolled channel semaphore plays for concurrent distance lookups
// in the teacher's delivery planner.
var solveSem = make(chan struct{}, 8)

// solverCacheEntry is one instance's cached Solver plus the config it
// was built with. A Solver's arenas are reset in place on every Solve
// call, so two requests sharing an entry must never run concurrently;
// mu serializes them while leaving unrelated instances free to solve
// in parallel.
type solverCacheEntry struct {
	mu     sync.Mutex
	solver *engine.Solver
	cfg    engine.Config
}

var (
	solverCacheMu sync.Mutex
	solverCache   = map[string]*solverCacheEntry{}
)

// solverFor returns the cached Solver for instanceID, rebuilding it if
// none exists yet or if cfg no longer matches what it was built with
// (a per-request Bidirectional override changes the graphs a Solver
// needs). The caller must call the returned unlock once done with the
// Solver.
func solverFor(instanceID string, data domain.ProblemData, cfg engine.Config) (*engine.Solver, func(), error) {
	solverCacheMu.Lock()
	entry, ok := solverCache[instanceID]
	if !ok || entry.cfg != cfg {
		solver, err := engine.NewSolver(data, cfg)
		if err != nil {
			solverCacheMu.Unlock()
			return nil, nil, err
		}
		entry = &solverCacheEntry{solver: solver, cfg: cfg}
		solverCache[instanceID] = entry
	}
	solverCacheMu.Unlock()

	entry.mu.Lock()
	return entry.solver, entry.mu.Unlock, nil
}

// InvalidateSolverCache drops any cached Solver for instanceID, so the
// next Solve rebuilds it from freshly saved instance data rather than
// reusing topology built from the instance's previous contents.
func InvalidateSolverCache(instanceID string) {
	solverCacheMu.Lock()
	delete(solverCache, instanceID)
	solverCacheMu.Unlock()
}

// SolveRequest is one orchestrated pricing call: load the named
// instance, consult the cache, run the engine, record the outcome.
type SolveRequest struct {
	InstanceID string
	Duals      []float64
	Forbidden  []engine.ForbiddenArc
	Config     engine.Config
}

// Solve loads req.InstanceID via repo, serves a cache hit if one
// exists, otherwise runs it against a cached (or freshly built) Solver,
// writing an audit row and caching the result before returning.
func Solve(
	ctx context.Context,
	req SolveRequest,
	repo ports.InstanceRepository,
	solveCache ports.SolveCache,
	auditLog ports.SolveAuditLog,
) ([]domain.Column, error) {
	var err error
	done := obs.Time(ctx, "pricing_service.solve")
	defer done(&err)

	data, err := repo.Get(ctx, req.InstanceID)
	if err != nil {
		return nil, fmt.Errorf("solve: load instance %q: %w", req.InstanceID, err)
	}

	cacheKey := ports.SolveCacheKey{
		InstanceID: req.InstanceID,
		Duals:      req.Duals,
		Forbidden:  req.Forbidden,
		Config:     req.Config,
	}

	if solveCache != nil {
		if columns, hit, cerr := solveCache.Get(ctx, cacheKey); cerr == nil && hit {
			return columns, nil
		}
	}

	solveSem <- struct{}{}
	defer func() { <-solveSem }()

	solver, unlock, err := solverFor(req.InstanceID, data, req.Config)
	if err != nil {
		return nil, fmt.Errorf("solve: build solver for instance %q: %w", req.InstanceID, err)
	}
	defer unlock()

	columns, err := solver.Solve(req.Duals, req.Forbidden)
	if err != nil {
		return nil, fmt.Errorf("solve: instance %q: %w", req.InstanceID, err)
	}

	obs.SolvesTotal.Inc()
	obs.LabelsCreatedTotal.Add(int64(solver.Stats().LabelsCreated))
	obs.ColumnsFoundTotal.Add(int64(len(columns)))

	if solveCache != nil {
		if serr := solveCache.Set(ctx, cacheKey, columns); serr != nil {
			log.Printf("solve: cache set for instance %q failed: %v", req.InstanceID, serr)
		}
	}

	if auditLog != nil {
		entry := ports.SolveAuditEntry{InstanceID: req.InstanceID, NumColumns: len(columns)}
		if len(columns) > 0 {
			entry.BestReducedCost = columns[0].ReducedCost
		}
		if aerr := auditLog.Record(ctx, entry); aerr != nil {
			log.Printf("solve: audit log record for instance %q failed: %v", req.InstanceID, aerr)
		}
	}

	return columns, nil
}
