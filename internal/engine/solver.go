package engine

import (
	"fmt"
	"math"

	"pricing-engine/internal/domain"
)

// Config tunes a Solver without affecting the correctness of ESPPRC
// (bucket width) or changing it deliberately (bidirectional halfway
// cutoffs, per §9's note that they must be wide enough to overlap).
type Config struct {
	BucketStep        float64
	Bidirectional     bool
	ForwardHaltRatio  float64
	BackwardHaltRatio float64
	K                 int
	EpsCost           float64
	EpsTime           float64
	EpsNeg            float64
	LabelCapacityHint int
}

// DefaultConfig returns the spec's default tunables: 50 kept columns,
// monodirectional search, 1e-6/1e-6/1e-5 epsilons.
func DefaultConfig() Config {
	return Config{
		BucketStep:        10,
		Bidirectional:     false,
		ForwardHaltRatio:  0.6,
		BackwardHaltRatio: 0.4,
		K:                 50,
		EpsCost:           1e-6,
		EpsTime:           1e-6,
		EpsNeg:            1e-5,
		LabelCapacityHint: 1 << 16,
	}
}

// Solver is a constructed ESPPRC engine over one ProblemData. The
// BucketGraph, ng-masks and ProblemData are built once here and never
// mutated across Solve calls; only the arenas, dominance stores and
// bucket indices are reset at the start of every Solve.
type Solver struct {
	data domain.ProblemData
	cfg  Config

	fwdGraph *BucketGraph
	bwdGraph *BucketGraph
	ngMasks  []domain.Bitset

	fwdArena *LabelArena
	bwdArena *LabelArena

	fwdStore *DominanceStore
	bwdStore *DominanceStore

	fwdBuckets *BucketIndex
	bwdBuckets *BucketIndex
}

// NewSolver builds an engine over data with the given bucket step.
// Invalid configuration is rejected here, not at Solve time.
func NewSolver(data domain.ProblemData, cfg Config) (*Solver, error) {
	if cfg.BucketStep <= 0 {
		return nil, fmt.Errorf("new solver: bucket_step must be positive, got %f", cfg.BucketStep)
	}
	if cfg.K <= 0 {
		cfg.K = 50
	}
	if cfg.LabelCapacityHint <= 0 {
		cfg.LabelCapacityHint = 1 << 16
	}

	horizon := 0.0
	for _, t := range data.TWEnd {
		if t > horizon {
			horizon = t
		}
	}

	fwdArena := NewLabelArena(cfg.LabelCapacityHint)
	s := &Solver{
		data:     data,
		cfg:      cfg,
		fwdGraph: BuildForwardGraph(data),
		ngMasks:  domain.BuildNgMasks(data),

		fwdArena: fwdArena,
		fwdStore: NewDominanceStore(fwdArena, data.NumNodes, cfg.EpsCost, cfg.EpsTime),

		fwdBuckets: NewBucketIndex(cfg.BucketStep, horizon),
	}

	if cfg.Bidirectional {
		s.bwdGraph = BuildBackwardGraph(data)
		s.bwdArena = NewLabelArena(cfg.LabelCapacityHint)
		s.bwdStore = NewDominanceStore(s.bwdArena, data.NumNodes, cfg.EpsCost, cfg.EpsTime)
		s.bwdBuckets = NewBucketIndex(cfg.BucketStep, horizon)
	}

	return s, nil
}

// Solve runs one labeling pass against duals and returns up to K
// negative-reduced-cost elementary (or ng-relaxed) paths from the
// depot back to itself, sorted by ascending reduced cost. An empty
// slice is returned when no improving column exists; this is a normal
// outcome, never an error.
func (s *Solver) Solve(duals []float64, forbidden []ForbiddenArc) ([]domain.Column, error) {
	if len(duals) != s.data.NumNodes {
		return nil, fmt.Errorf("solve: duals has length %d, want %d", len(duals), s.data.NumNodes)
	}

	forbiddenTbl, err := newForbiddenTable(s.data.NumNodes, forbidden)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	s.fwdArena.Reset()
	s.fwdStore.Reset()
	s.fwdBuckets.Reset()

	forwardHalt := math.Inf(1)
	if s.cfg.Bidirectional {
		forwardHalt = s.cfg.ForwardHaltRatio * s.data.TWEnd[domain.Depot]
	}
	runForwardLabeling(s.data, s.fwdGraph, s.ngMasks, s.fwdArena, s.fwdStore, s.fwdBuckets, duals, forbiddenTbl, forwardHalt)

	var columns []domain.Column
	if s.cfg.Bidirectional {
		s.bwdArena.Reset()
		s.bwdStore.Reset()
		s.bwdBuckets.Reset()

		backwardHalt := s.cfg.BackwardHaltRatio * s.data.TWEnd[domain.Depot]
		runBackwardLabeling(s.data, s.bwdGraph, s.ngMasks, s.bwdArena, s.bwdStore, s.bwdBuckets, duals, forbiddenTbl, backwardHalt)

		columns = CollectBidirectional(s.data, duals, s.fwdArena, s.bwdArena, s.fwdStore, s.bwdStore, s.cfg.EpsTime, s.cfg.EpsNeg)
	} else {
		columns = CollectMonodirectional(s.data, duals, s.fwdArena, s.fwdStore, s.cfg.EpsNeg)
	}

	return topK(columns, s.cfg.K), nil
}

// Stats reports label-arena sizes from the most recent Solve call, for
// callers that want to surface labeling effort without the engine
// depending on any observability package itself.
type Stats struct {
	LabelsCreated int
}

func (s *Solver) Stats() Stats {
	n := s.fwdArena.Len()
	if s.bwdArena != nil {
		n += s.bwdArena.Len()
	}
	return Stats{LabelsCreated: n}
}
