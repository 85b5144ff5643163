package services

import (
	"context"
	"fmt"
	"testing"

	"pricing-engine/internal/domain"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/ports"
)

func lineInstance() domain.ProblemData {
	return domain.ProblemData{
		NumNodes:        3,
		VehicleCapacity: 2,
		Demands:         []int{0, 1, 1},
		ServiceTimes:    []float64{0, 0, 0},
		TWStart:         []float64{0, 0, 0},
		TWEnd:           []float64{100, 100, 100},
		DistMatrix: [][]float64{
			{0, 2, 5},
			{2, 0, 3},
			{5, 3, 0},
		},
		TimeMatrix: [][]float64{
			{0, 2, 5},
			{2, 0, 3},
			{5, 3, 0},
		},
		Neighbors: [][]int{
			{1, 2},
			{0, 2},
			{0, 1},
		},
	}
}

type fakeInstanceRepo struct {
	data  domain.ProblemData
	saves int
}

func (f *fakeInstanceRepo) Get(ctx context.Context, id string) (domain.ProblemData, error) {
	return f.data, nil
}

func (f *fakeInstanceRepo) Save(ctx context.Context, id string, data domain.ProblemData) error {
	f.data = data
	f.saves++
	return nil
}

type fakeSolveCache struct {
	entries map[string][]domain.Column
	gets    int
}

func cacheKeyString(key ports.SolveCacheKey) string {
	return fmt.Sprintf("%s|%v|%v|%+v", key.InstanceID, key.Duals, key.Forbidden, key.Config)
}

func (f *fakeSolveCache) Get(ctx context.Context, key ports.SolveCacheKey) ([]domain.Column, bool, error) {
	f.gets++
	cols, ok := f.entries[cacheKeyString(key)]
	return cols, ok, nil
}

func (f *fakeSolveCache) Set(ctx context.Context, key ports.SolveCacheKey, columns []domain.Column) error {
	if f.entries == nil {
		f.entries = map[string][]domain.Column{}
	}
	f.entries[cacheKeyString(key)] = columns
	return nil
}

func TestSolveCacheKeyDistinguishesBidirectionalOverride(t *testing.T) {
	cache := &fakeSolveCache{}
	repo := &fakeInstanceRepo{data: lineInstance()}
	duals := []float64{0, 0, 0}

	mono := engine.DefaultConfig()
	mono.Bidirectional = false
	bidi := engine.DefaultConfig()
	bidi.Bidirectional = true

	if _, err := Solve(context.Background(), SolveRequest{InstanceID: "a", Duals: duals, Config: mono}, repo, cache, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Solve(context.Background(), SolveRequest{InstanceID: "a", Duals: duals, Config: bidi}, repo, cache, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.entries) != 2 {
		t.Fatalf("expected distinct cache entries for mono and bidirectional configs, got %d", len(cache.entries))
	}
}

func TestSolverForReusesSolverAcrossCalls(t *testing.T) {
	InvalidateSolverCache("reuse-test")
	data := lineInstance()
	cfg := engine.DefaultConfig()

	s1, unlock1, err := solverFor("reuse-test", data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock1()

	s2, unlock2, err := solverFor("reuse-test", data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock2()

	if s1 != s2 {
		t.Fatalf("expected the same *engine.Solver to be reused for identical config")
	}
}

func TestSolverForRebuildsOnConfigMismatch(t *testing.T) {
	InvalidateSolverCache("config-mismatch-test")
	data := lineInstance()

	mono := engine.DefaultConfig()
	mono.Bidirectional = false
	bidi := engine.DefaultConfig()
	bidi.Bidirectional = true

	s1, unlock1, err := solverFor("config-mismatch-test", data, mono)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock1()

	s2, unlock2, err := solverFor("config-mismatch-test", data, bidi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock2()

	if s1 == s2 {
		t.Fatalf("expected a rebuilt *engine.Solver after a config change")
	}
}

func TestInvalidateSolverCacheForcesRebuild(t *testing.T) {
	InvalidateSolverCache("invalidate-test")
	data := lineInstance()
	cfg := engine.DefaultConfig()

	s1, unlock1, err := solverFor("invalidate-test", data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock1()

	InvalidateSolverCache("invalidate-test")

	s2, unlock2, err := solverFor("invalidate-test", data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlock2()

	if s1 == s2 {
		t.Fatalf("expected a fresh *engine.Solver after invalidation")
	}
}
