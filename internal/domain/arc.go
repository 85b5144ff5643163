package domain

// Arc is an immutable precomputed edge in a BucketGraph: the static
// distance component of reduced cost, plus the resource deltas a label
// picks up when it extends across the arc.
type Arc struct {
	Target   int
	Cost     float64
	Duration float64
	Demand   int
	Distance float64
}
