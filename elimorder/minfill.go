package elimorder

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/treedp/bqm"
	"github.com/katalvlaran/treedp/logger"
)

// minFillItem is a heap entry scoring one candidate variable.
// Entries may go stale after eliminations; they are re-scored on pop.
type minFillItem struct {
	v    int // position in the model's insertion order
	fill int // number of fill edges elimination of v would add
}

// minFillComparator orders candidates by ascending fill count,
// ties broken by the lowest variable index for determinism.
func minFillComparator(a, b interface{}) int {
	x, y := a.(minFillItem), b.(minFillItem)
	if x.fill != y.fill {
		return x.fill - y.fill
	}

	return x.v - y.v
}

// fillCount returns the number of missing edges among the live neighbors
// of v, i.e. the fill edges its elimination would introduce.
func fillCount(adj []*bitset.BitSet, v int) int {
	var (
		nb      = adj[v]
		missing uint
		a       uint
		ok      bool
	)
	for a, ok = nb.NextSet(0); ok; a, ok = nb.NextSet(a + 1) {
		// nb \ adj[a] counts non-neighbors of a inside the neighborhood,
		// including a itself — subtract it.
		missing += nb.DifferenceCardinality(adj[a]) - 1
	}

	return int(missing / 2) // each missing pair was counted from both ends
}

// MinFill produces an elimination order with the greedy min-fill heuristic:
// repeatedly eliminate the variable whose removal adds the fewest fill
// edges, ties broken by the lowest insertion index. Returns the order and
// its induced width.
//
// The candidate pool is a lazy min-heap: popped entries are re-scored
// against the current graph and pushed back when stale, the same
// lazy-decrease-key discipline as a heap-driven shortest-path search.
//
// Complexity: O(n²·d²/w) worst case; far less on sparse graphs.
func MinFill(m *bqm.Model) ([]string, int, error) {
	if m == nil {
		return nil, 0, ErrNilModel
	}

	var (
		names = m.Variables()
		n     = len(names)
		adj   = adjacency(m, names)
		order = make([]string, 0, n)
		heap  = binaryheap.NewWith(minFillComparator)
		done  = make([]bool, n)
		width int
	)
	var v int
	for v = 0; v < n; v++ {
		heap.Push(minFillItem{v: v, fill: fillCount(adj, v)})
	}

	var (
		raw  interface{}
		ok   bool
		item minFillItem
		cur  int
		deg  int
		a    uint
	)
	for len(order) < n {
		raw, ok = heap.Pop()
		if !ok {
			break // unreachable: every live variable keeps one heap entry
		}
		item = raw.(minFillItem)
		if done[item.v] {
			continue
		}

		// Re-score against the current graph; stale entries go back.
		if cur = fillCount(adj, item.v); cur != item.fill {
			heap.Push(minFillItem{v: item.v, fill: cur})

			continue
		}

		// Eliminate item.v: record width, clique its neighborhood, detach it.
		done[item.v] = true
		order = append(order, names[item.v])
		if deg = int(adj[item.v].Count()); deg > width {
			width = deg
		}
		for a, ok = adj[item.v].NextSet(0); ok; a, ok = adj[item.v].NextSet(a + 1) {
			adj[a].InPlaceUnion(adj[item.v])
			adj[a].Clear(a)
			adj[a].Clear(uint(item.v))
		}
	}

	log := logger.Logger()
	log.Debug().
		Int("variables", n).
		Int("width", width).
		Msg("min-fill elimination order")

	return order, width, nil
}
