package engine

import "fmt"

// ForbiddenArc is an ordered pair the caller wants excluded from this
// solve only; it carries no state beyond one call.
type ForbiddenArc struct {
	From int
	To   int
}

// forbiddenTable is a dense N×N membership table built fresh per solve
// and discarded at solve end (§4.9).
type forbiddenTable struct {
	n         int
	forbidden []bool
}

func newForbiddenTable(n int, arcs []ForbiddenArc) (*forbiddenTable, error) {
	t := &forbiddenTable{n: n, forbidden: make([]bool, n*n)}
	for _, arc := range arcs {
		if arc.From < 0 || arc.From >= n || arc.To < 0 || arc.To >= n {
			return nil, fmt.Errorf("forbidden arc (%d, %d) out of range for %d nodes", arc.From, arc.To, n)
		}
		t.forbidden[arc.From*n+arc.To] = true
	}
	return t, nil
}

func (t *forbiddenTable) isForbidden(u, v int) bool {
	return t.forbidden[u*t.n+v]
}
