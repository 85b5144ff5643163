package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"pricing-engine/internal/ports"
)

// redisKey hashes a SolveCacheKey into a short, fixed-width Redis key.
// Duals repeat often across near-converged column-generation iterations,
// so a stable hash of the full vector (rather than, say, only the
// instance id) is what makes the cache actually memoize anything.
func redisKey(key ports.SolveCacheKey) string {
	var b strings.Builder
	b.WriteString(key.InstanceID)
	b.WriteByte('|')
	for _, d := range key.Duals {
		b.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, arc := range key.Forbidden {
		b.WriteString(strconv.Itoa(arc.From))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(arc.To))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	fmt.Fprintf(&b, "%+v", key.Config)

	sum := xxhash.Sum64String(b.String())
	return fmt.Sprintf("solve:%016x", sum)
}
