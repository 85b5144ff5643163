package engine

import "math"

// bucketMargin pads the bucket array past ceil(max(tw_end)/step) so that
// root labels seeded exactly at tw_end[0] (backward mode) never index
// out of range from floating point rounding.
const bucketMargin = 4

// BucketIndex buckets label indices by floor(time/step), giving the
// time-ordered processing frontier the main labeling loop walks.
// Forward labeling walks buckets ascending; backward labeling walks
// them descending. Within a bucket, order is insertion order.
type BucketIndex struct {
	step    float64
	buckets [][]int
}

// NewBucketIndex sizes the bucket array to accommodate horizon at the
// given step.
func NewBucketIndex(step float64, horizon float64) *BucketIndex {
	n := int(math.Ceil(horizon/step)) + bucketMargin
	if n < 1 {
		n = 1
	}
	return &BucketIndex{step: step, buckets: make([][]int, n)}
}

func (b *BucketIndex) indexFor(t float64) int {
	idx := int(math.Floor(t / b.step))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(b.buckets) {
		idx = len(b.buckets) - 1
	}
	return idx
}

// Push places labelIdx into the bucket for time t.
func (b *BucketIndex) Push(t float64, labelIdx int) {
	idx := b.indexFor(t)
	b.buckets[idx] = append(b.buckets[idx], labelIdx)
}

// NumBuckets returns the number of buckets.
func (b *BucketIndex) NumBuckets() int {
	return len(b.buckets)
}

// ForEach visits every label index currently in bucket i, including
// ones appended by visit itself (a push into the same bucket during
// iteration extends the walk rather than racing it — the pushed time is
// never earlier (forward) or later (backward) than the time of the
// label being visited, matching the direction the buckets are walked,
// so this never reorders processing with respect to time). Pushes into any other
// bucket are unaffected.
func (b *BucketIndex) ForEach(i int, visit func(labelIdx int)) {
	for pos := 0; pos < len(b.buckets[i]); pos++ {
		visit(b.buckets[i][pos])
	}
}

// Reset clears every bucket for the next solve. Capacity is retained.
func (b *BucketIndex) Reset() {
	for i := range b.buckets {
		b.buckets[i] = b.buckets[i][:0]
	}
}
