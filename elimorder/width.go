package elimorder

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/treedp/bqm"
)

// adjacency builds the interaction graph of m as bitsets indexed by the
// positions of the given variable order: bit j set in row i means the
// variables at order positions i and j carry a quadratic bias.
func adjacency(m *bqm.Model, order []string) []*bitset.BitSet {
	var (
		n   = len(order)
		pos = make(map[string]int, n)
		adj = make([]*bitset.BitSet, n)
		i   int
		v   string
	)
	for i, v = range order {
		pos[v] = i
	}
	for i = 0; i < n; i++ {
		adj[i] = bitset.New(uint(n))
	}

	var (
		pair bqm.Interaction
		pu   int
		pv   int
	)
	for _, pair = range m.Interactions() {
		pu, pv = pos[pair.U], pos[pair.V]
		adj[pu].Set(uint(pv))
		adj[pv].Set(uint(pu))
	}

	return adj
}

// validate checks that order is exactly a permutation of m's variables.
func validate(m *bqm.Model, order []string) error {
	if len(order) != m.NumVariables() {
		return ErrOrderInvalid
	}

	var (
		seen = make(map[string]struct{}, len(order))
		v    string
		dup  bool
	)
	for _, v = range order {
		if !m.HasVariable(v) {
			return ErrOrderInvalid
		}
		if _, dup = seen[v]; dup {
			return ErrOrderInvalid
		}
		seen[v] = struct{}{}
	}

	return nil
}

// Width validates that order is a permutation of m's variables and returns
// its induced width: the maximum number of not-yet-eliminated neighbors
// seen while walking the order with fill-in. The model is never mutated;
// the simulation runs on a working bitset adjacency.
//
// Complexity: O(n·d²/w) bitset word operations, d = max fill-in degree.
func Width(m *bqm.Model, order []string) (int, error) {
	if m == nil {
		return 0, ErrNilModel
	}
	if err := validate(m, order); err != nil {
		return 0, err
	}

	var (
		n     = len(order)
		adj   = adjacency(m, order)
		width int
		i     int
		deg   int
		j     uint
		ok    bool
	)
	for i = 0; i < n; i++ {
		deg = int(adj[i].Count())
		if deg > width {
			width = deg
		}

		// Fill-in: every remaining neighbor inherits the full neighborhood
		// of i, then drops i itself (and any accidental self bit).
		for j, ok = adj[i].NextSet(0); ok; j, ok = adj[i].NextSet(j + 1) {
			adj[j].InPlaceUnion(adj[i])
			adj[j].Clear(uint(i))
			adj[j].Clear(j)
		}
	}

	return width, nil
}

// Check validates order against m and enforces the treewidth ceiling.
// On success it returns the induced width; when the width is above the
// ceiling it returns a *TreewidthError reporting both values.
func Check(m *bqm.Model, order []string, ceiling int) (int, error) {
	width, err := Width(m, order)
	if err != nil {
		return 0, err
	}
	if width > ceiling {
		return width, &TreewidthError{Width: width, Ceiling: ceiling}
	}

	return width, nil
}
