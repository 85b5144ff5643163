package domain

// BuildNgMasks turns the instance's raw ng_neighbor_lists into per-node
// Bitsets used by Bitset.ApplyNgRelaxation. An empty ng_neighbor_lists
// degenerates every mask to the full node universe, which makes
// ng-relaxation behave as strict (full) elementarity.
func BuildNgMasks(data ProblemData) []Bitset {
	masks := make([]Bitset, data.NumNodes)

	if len(data.NGNeighborLists) == 0 {
		universe := NewBitset()
		for i := 0; i < data.NumNodes; i++ {
			universe.Set(i)
		}
		for i := range masks {
			masks[i] = universe.Clone()
		}
		return masks
	}

	for i := 0; i < data.NumNodes; i++ {
		m := NewBitset()
		for _, nb := range data.NGNeighborLists[i] {
			m.Set(nb)
		}
		m.Set(i)
		masks[i] = m
	}
	return masks
}
