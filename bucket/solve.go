package bucket

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/treedp/bqm"
	"github.com/katalvlaran/treedp/elimorder"
	"github.com/katalvlaran/treedp/logger"
	"github.com/katalvlaran/treedp/table"
)

// Solver finds the lowest-energy assignments of a binary quadratic model
// by min-sum bucket elimination. A Solver is stateless between calls and
// safe for concurrent use; every Solve allocates its own tables, trace and
// frontier.
type Solver struct {
	cfg config
}

// NewSolver returns a Solver with the default treewidth ceiling (25),
// optionally overridden with WithMaxTreewidth.
func NewSolver(opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Solver{cfg: cfg}
}

// MaxTreewidth reports the read-only treewidth ceiling of this Solver.
func (s *Solver) MaxTreewidth() int { return s.cfg.maxTreewidth }

// Solve returns the MaxSolutions lowest-energy distinct assignments of m
// in non-decreasing energy order (energy ties preserved, assignments
// globally distinct). With no WithOrder option the min-fill heuristic
// proposes the elimination order; either way the order is validated and
// its induced width checked against the ceiling before any table is
// allocated.
//
// The empty model is a degenerate success: an empty result, no error.
//
// Complexity: O(n·w·2^(w+1)) for the forward pass plus O(k·n·log(k·n))
// for k-best traceback.
func (s *Solver) Solve(m *bqm.Model, opts ...SolveOption) (*SolveResult, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	var (
		cfg = DefaultSolveOptions()
		opt SolveOption
	)
	for _, opt = range opts {
		opt(&cfg)
	}
	if cfg.MaxSolutions < 1 {
		return nil, ErrBadMaxSolutions
	}

	if m.NumVariables() == 0 {
		return &SolveResult{}, nil
	}

	order, width, err := s.checkedOrder(m, cfg.Order)
	if err != nil {
		return nil, err
	}

	seeds, err := seedTables(m, order, 1)
	if err != nil {
		return nil, err
	}
	fw, err := runForward(seeds, len(order), minReduce)
	if err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Debug().
		Int("width", width).
		Float64("min_energy", fw.base+m.Offset()).
		Msg("min-sum elimination complete")

	states, costs, err := kBest(fw, cfg.MaxSolutions)
	if err != nil {
		return nil, err
	}

	var (
		res  = &SolveResult{Width: width, Solutions: make([]Solution, len(states))}
		vt   = m.Vartype()
		base = fw.base + m.Offset()
		i    int
		j    int
	)
	for i = range states {
		sample := make(bqm.Assignment, len(order))
		for j = range order {
			sample[order[j]] = vt.Value(states[i][j])
		}
		res.Solutions[i] = Solution{Sample: sample, Energy: base + costs[i], NumOccurrences: 1}
	}
	tileOccurrences(res.Solutions, cfg.MaxSolutions)

	return res, nil
}

// checkedOrder resolves the elimination order (explicit or min-fill) and
// enforces the treewidth ceiling, returning the order and its width.
func (s *Solver) checkedOrder(m *bqm.Model, explicit []string) ([]string, int, error) {
	return checkedOrder(m, explicit, s.cfg.maxTreewidth)
}

func checkedOrder(m *bqm.Model, explicit []string, ceiling int) ([]string, int, error) {
	var (
		order = explicit
		err   error
	)
	if order == nil {
		if order, _, err = elimorder.MinFill(m); err != nil {
			return nil, 0, err
		}
	}
	width, err := elimorder.Check(m, order, ceiling)
	if err != nil {
		return nil, 0, err
	}

	return order, width, nil
}

// searchState is one node of the best-first k-best traceback: a partial
// assignment of the variables eliminated last, its accumulated residual
// cost, and the next variable (in reverse elimination order) to branch on.
type searchState struct {
	cost   float64
	seq    uint64 // insertion counter; breaks cost ties deterministically
	next   int    // variable to assign next; -1 when complete
	states []int8 // states[j] valid for j > next
}

// searchStateComparator orders the frontier by ascending residual cost,
// ties by insertion order.
func searchStateComparator(a, b interface{}) int {
	x, y := a.(*searchState), b.(*searchState)
	switch {
	case x.cost < y.cost:
		return -1
	case x.cost > y.cost:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	default:
		return 0
	}
}

// kBest enumerates up to maxSolutions distinct assignments in
// non-decreasing energy order by best-first search over the trace
// residuals delta_i = lambda_i − message_i (non-negative by construction;
// an assignment's energy is the accumulator plus its residual sum). The
// frontier is an explicit heap — no recursion — and expanding a state
// assigns the next variable in reverse elimination order, so every
// separator is already fixed when its variable is branched on.
func kBest(fw *forwardPass, maxSolutions int) ([][]int8, []float64, error) {
	// The single-optimum case needs no frontier: follow the recorded
	// argmin witnesses, whose residual sum is zero.
	if maxSolutions == 1 {
		best, err := witnessWalk(fw)
		if err != nil {
			return nil, nil, err
		}

		return [][]int8{best}, []float64{0}, nil
	}

	// Residual tables: delta_i(x_v, sep) = lambda_i − message_i >= 0.
	var (
		deltas = make([]*table.Table, fw.n)
		err    error
		i      int
	)
	for i = 0; i < fw.n; i++ {
		if deltas[i], err = fw.nodes[i].lambda.Divide(fw.nodes[i].message); err != nil {
			return nil, nil, err
		}
	}

	// Cap at the total number of distinct states, 2^n.
	k := maxSolutions
	if fw.n < 62 && k > 1<<fw.n {
		k = 1 << fw.n
	}

	var (
		frontier = binaryheap.NewWith(searchStateComparator)
		seq      uint64
		states   = make([][]int8, 0, k)
		costs    = make([]float64, 0, k)
	)
	frontier.Push(&searchState{next: fw.n - 1, states: make([]int8, fw.n)})
	seq++

	var (
		raw   interface{}
		ok    bool
		cur   *searchState
		delta float64
		x     int8
	)
	for len(states) < k {
		raw, ok = frontier.Pop()
		if !ok {
			break // exhausted the state space before reaching k
		}
		cur = raw.(*searchState)

		if cur.next < 0 {
			states = append(states, cur.states)
			costs = append(costs, cur.cost)

			continue
		}

		for x = 0; x <= 1; x++ {
			child := make([]int8, fw.n)
			copy(child, cur.states)
			child[cur.next] = x

			if delta, err = residualAt(deltas[cur.next], child, x); err != nil {
				return nil, nil, err
			}
			frontier.Push(&searchState{
				cost:   cur.cost + delta,
				seq:    seq,
				next:   cur.next - 1,
				states: child,
			})
			seq++
		}
	}

	return states, costs, nil
}

// witnessWalk reconstructs the optimal assignment in reverse elimination
// order: every separator is already fixed when its variable's witness is
// looked up.
func witnessWalk(fw *forwardPass) ([]int8, error) {
	var (
		states = make([]int8, fw.n)
		node   *traceNode
		i      int
	)
	for i = fw.n - 1; i >= 0; i-- {
		node = &fw.nodes[i]
		idx, err := node.message.Index(sepStates(node, states))
		if err != nil {
			return nil, err
		}
		states[i] = node.witness[idx]
	}

	return states, nil
}

// residualAt evaluates delta(x_v = x | separator states).
func residualAt(delta *table.Table, states []int8, x int8) (float64, error) {
	var (
		scope = delta.Vars() // {v} ∪ sep; v = scope[0]
		full  = make([]int8, len(scope))
		k     int
		j     int
	)
	full[0] = x
	for k = 1; k < len(scope); k++ {
		j = scope[k]
		full[k] = states[j]
	}
	idx, err := delta.Index(full)
	if err != nil {
		return 0, err
	}

	return delta.Value(idx), nil
}

// tileOccurrences spreads requested occurrences over the found solutions
// when the request exceeded the number of distinct states: each solution
// gets floor(requested/found), the lowest-energy remainder one extra.
func tileOccurrences(solutions []Solution, requested int) {
	found := len(solutions)
	if found == 0 || requested <= found {
		return
	}

	var (
		q = requested / found
		r = requested % found
		i int
	)
	for i = range solutions {
		solutions[i].NumOccurrences = q
		if i < r {
			solutions[i].NumOccurrences++
		}
	}
}
