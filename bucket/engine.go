package bucket

import (
	"github.com/katalvlaran/treedp/bqm"
	"github.com/katalvlaran/treedp/logger"
	"github.com/katalvlaran/treedp/table"
)

// reduceFn eliminates one variable from a table. The witness slice is the
// per-remaining-assignment argmin (min-sum) or nil (sum-product).
type reduceFn func(t *table.Table, v int) (*table.Table, []int8, error)

// minReduce is the min-sum reduction operator.
func minReduce(t *table.Table, v int) (*table.Table, []int8, error) {
	return t.ReduceMin(v)
}

// logSumExpReduce is the sum-product reduction operator (log domain).
func logSumExpReduce(t *table.Table, v int) (*table.Table, []int8, error) {
	red, err := t.ReduceLogSumExp(v)

	return red, nil, err
}

// traceNode is the elimination record of one variable, everything backward
// reconstruction needs: the combined pre-reduction table, the forwarded
// message, the argmin witness and the separator.
type traceNode struct {
	v       int          // elimination position of the variable
	sep     []int        // remaining scope after reduction; all entries > v
	lambda  *table.Table // combined bucket table over {v} ∪ sep
	message *table.Table // lambda reduced over v (scope = sep)
	witness []int8       // argmin of v per sep assignment; nil in sum-product
	parent  int          // bucket that consumed message: sep[0], or -1 for roots
}

// forwardPass is the full elimination trace plus the scalar accumulator.
type forwardPass struct {
	n     int
	nodes []traceNode // indexed by elimination position
	base  float64     // sum of folded scalars: min energy or logZ (both before offset)
}

// seedTables builds the initial potentials in index space, where a
// variable's index is its position in the elimination order: one singleton
// table per variable (zero-bias variables included, so every bucket is
// non-empty and disconnected components need no detection) and one pair
// table per interaction, each value scaled by scale (+1 for min-sum, −β
// for sum-product).
func seedTables(m *bqm.Model, order []string, scale float64) ([]*table.Table, error) {
	var (
		vt     = m.Vartype()
		low    = float64(vt.Low())
		high   = float64(vt.High())
		pos    = make(map[string]int, len(order))
		tables = make([]*table.Table, 0, len(order)+m.NumInteractions())
		i      int
		v      string
		err    error
		t      *table.Table
	)
	for i, v = range order {
		pos[v] = i
	}

	var bias float64
	for i, v = range order {
		bias = m.Linear(v)
		if t, err = table.FromValues([]int{i}, []float64{scale * bias * low, scale * bias * high}); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	var (
		pair   bqm.Interaction
		j      float64
		pu, pv int
		vals   [4]float64
	)
	for _, pair = range m.Interactions() {
		j, _ = m.Quadratic(pair.U, pair.V)
		pu, pv = pos[pair.U], pos[pair.V]
		if pu > pv {
			pu, pv = pv, pu // scope must ascend; the product is symmetric
		}
		vals = [4]float64{
			scale * j * low * low,   // both low
			scale * j * high * low,  // lower-index var high
			scale * j * low * high,  // higher-index var high
			scale * j * high * high, // both high
		}
		if t, err = table.FromValues([]int{pu, pv}, vals[:]); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}

// runForward executes bucket elimination over the seeded tables. Variables
// are walked in index order; each bucket is combined into one table, the
// variable is reduced out, and the result is forwarded to the bucket of
// its lowest remaining scope variable or folded into the accumulator.
func runForward(seeds []*table.Table, n int, reduce reduceFn) (*forwardPass, error) {
	var (
		buckets = make([][]*table.Table, n)
		fw      = &forwardPass{n: n, nodes: make([]traceNode, n)}
		t       *table.Table
	)
	for _, t = range seeds {
		home := t.Vars()[0] // lowest scope variable is eliminated first
		buckets[home] = append(buckets[home], t)
	}

	var (
		i       int
		lambda  *table.Table
		message *table.Table
		witness []int8
		err     error
		sep     []int
		parent  int
	)
	for i = 0; i < n; i++ {
		if lambda, err = table.CombineAll(buckets[i]); err != nil {
			return nil, err
		}
		buckets[i] = nil // bucket consumed, never revisited

		if message, witness, err = reduce(lambda, i); err != nil {
			return nil, err
		}

		sep = message.Vars()
		parent = -1
		if message.IsScalar() {
			fw.base += message.Value(0)
		} else {
			parent = sep[0]
			buckets[parent] = append(buckets[parent], message)
		}
		fw.nodes[i] = traceNode{
			v:       i,
			sep:     sep,
			lambda:  lambda,
			message: message,
			witness: witness,
			parent:  parent,
		}
	}

	log := logger.Logger()
	log.Debug().
		Int("variables", n).
		Float64("accumulator", fw.base).
		Msg("forward elimination complete")

	return fw, nil
}

// sepStates extracts the separator states of node from a full state
// vector (states[j] valid for every j in node.sep).
func sepStates(node *traceNode, states []int8) []int8 {
	out := make([]int8, len(node.sep))
	for k, j := range node.sep {
		out[k] = states[j]
	}

	return out
}

// conditional returns the two lambda entries of node.v given fixed
// separator states: the low-state and high-state values.
func conditional(node *traceNode, states []int8) (lo, hi float64, err error) {
	var (
		scope = node.lambda.Vars() // {v} ∪ sep, ascending; v = scope[0]
		full  = make([]int8, len(scope))
		k     int
		j     int
	)
	for k, j = range scope {
		if j == node.v {
			full[k] = 0
		} else {
			full[k] = states[j]
		}
	}
	idx, err := node.lambda.Index(full)
	if err != nil {
		return 0, 0, err
	}

	// v is the lowest scope variable, so its stride is bit 0.
	return node.lambda.Value(idx), node.lambda.Value(idx | 1), nil
}
