package bucket

import (
	"math"

	"github.com/katalvlaran/treedp/bqm"
	"github.com/katalvlaran/treedp/table"
)

// computeMarginals fills res.VariableMarginals and res.InteractionMarginals
// from the sum-product trace via a downward pass over the bucket tree.
//
// The forward pass sent each node's message up to its parent (the bucket
// of the lowest separator variable). Walking nodes in descending order,
// each node receives a downward message π: the parent's belief with the
// node's own upward message divided out, projected onto the separator.
// The node belief λ ⊗ π is then the exact unnormalized log-joint over the
// node's cluster, and marginals are normalized projections of it:
//
//   - variable v: the 1-variable projection of v's node belief;
//   - interaction (u, w): projected at the node of the pair's
//     lower-ranked endpoint, whose cluster contains both by construction
//     (the pair's seed table lives in that bucket).
func computeMarginals(m *bqm.Model, order []string, fw *forwardPass, res *SampleResult) error {
	var (
		pos = make(map[string]int, len(order))
		i   int
		v   string
	)
	for i, v = range order {
		pos[v] = i
	}

	// Interactions in index space, keyed by (lower, higher) position.
	type pairKey [2]int
	var (
		pairs   = make(map[pairKey]bqm.Interaction, m.NumInteractions())
		pu, pv  int
		swapped bool
	)
	for _, inter := range m.Interactions() {
		pu, pv = pos[inter.U], pos[inter.V]
		if pu > pv {
			pu, pv = pv, pu
		}
		pairs[pairKey{pu, pv}] = inter
	}

	res.VariableMarginals = make(map[string]float64, len(order))
	res.InteractionMarginals = make(map[bqm.Interaction]PairMarginal, m.NumInteractions())

	var (
		beliefs = make([]*table.Table, fw.n)
		node    *traceNode
		pi      *table.Table
		err     error
	)
	for i = fw.n - 1; i >= 0; i-- {
		node = &fw.nodes[i]

		// Downward message from the parent (roots get the identity).
		if node.parent < 0 {
			pi = table.Scalar(0)
		} else {
			if pi, err = beliefs[node.parent].Divide(node.message); err != nil {
				return err
			}
			if pi, err = pi.Project(node.sep); err != nil {
				return err
			}
		}
		if beliefs[i], err = node.lambda.Combine(pi); err != nil {
			return err
		}

		// Single-variable marginal: P(order[i] = high state).
		single, err := beliefs[i].Project([]int{i})
		if err != nil {
			return err
		}
		res.VariableMarginals[order[i]] = normalizedHigh(single.Value(0), single.Value(1))

		// Pair marginals for every original interaction rooted here.
		for _, j := range node.sep {
			inter, ok := pairs[pairKey{i, j}]
			if !ok {
				continue
			}
			joint, err := beliefs[i].Project([]int{i, j})
			if err != nil {
				return err
			}
			swapped = pos[inter.U] != i // inter.U sits at the higher position
			res.InteractionMarginals[inter] = pairDistribution(joint, m.Vartype(), swapped)
		}
	}

	return nil
}

// normalizedHigh turns the two log weights of a 1-variable table into
// P(high), stabilized by the larger weight.
func normalizedHigh(lo, hi float64) float64 {
	m := math.Max(lo, hi)

	return math.Exp(hi-m) / (math.Exp(lo-m) + math.Exp(hi-m))
}

// pairDistribution normalizes a 2-variable log-domain joint into the four
// configuration probabilities keyed by external domain values
// (value of U, value of V). Bit 0 of the joint indexes the lower-ranked
// variable; swapped reports that inter.U is the higher-ranked one.
func pairDistribution(joint *table.Table, vt bqm.Vartype, swapped bool) PairMarginal {
	var (
		maxv = math.Inf(-1)
		w    [4]float64
		sum  float64
		i    int
	)
	for i = 0; i < 4; i++ {
		if joint.Value(i) > maxv {
			maxv = joint.Value(i)
		}
	}
	for i = 0; i < 4; i++ {
		w[i] = math.Exp(joint.Value(i) - maxv)
		sum += w[i]
	}

	var (
		out  = make(PairMarginal, 4)
		a, b int8
	)
	for i = 0; i < 4; i++ {
		a, b = int8(i&1), int8(i>>1) // states of (lower, higher) variable
		if swapped {
			a, b = b, a
		}
		out[[2]int8{vt.Value(a), vt.Value(b)}] = w[i] / sum
	}

	return out
}
