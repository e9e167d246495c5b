package table

import "math"

// removeAt returns the scope without position p.
func removeAt(vars []int, p int) []int {
	out := make([]int, 0, len(vars)-1)
	out = append(out, vars[:p]...)
	out = append(out, vars[p+1:]...)

	return out
}

// expand re-inserts a zero bit at position p: it maps an index over the
// reduced scope to the corresponding low-state index over the full scope.
func expand(idx, p int) int {
	low := idx & ((1 << p) - 1)

	return low | (idx>>p)<<(p+1)
}

// ReduceMin eliminates v by minimization. It returns the reduced table and
// the argmin witness: witness[j] is the state of v (0 or 1) achieving the
// minimum for reduced assignment j. Ties pick state 0, which keeps
// traceback deterministic. Reducing a 1-variable table yields a scalar.
//
// Complexity: O(2^|scope|).
func (t *Table) ReduceMin(v int) (*Table, []int8, error) {
	p, ok := t.HasVar(v)
	if !ok {
		return nil, nil, ErrVarNotInScope
	}

	var (
		res     = &Table{vars: removeAt(t.vars, p), values: make([]float64, len(t.values)/2)}
		witness = make([]int8, len(res.values))
		stride  = 1 << p
		j       int
		full    int
		lo, hi  float64
	)
	for j = range res.values {
		full = expand(j, p)
		lo, hi = t.values[full], t.values[full|stride]
		if hi < lo {
			res.values[j], witness[j] = hi, 1
		} else {
			res.values[j], witness[j] = lo, 0
		}
	}

	return res, witness, nil
}

// logAddExp returns log(exp(a) + exp(b)) stabilized around max(a, b), the
// two-value log-sum-exp. −Inf inputs (zero weights) are handled exactly.
func logAddExp(a, b float64) float64 {
	m := math.Max(a, b)
	if math.IsInf(m, -1) {
		return m // both weights are zero
	}

	return m + math.Log(math.Exp(a-m)+math.Exp(b-m))
}

// ReduceLogSumExp eliminates v by log-sum-exp: each remaining assignment
// keeps log(exp(low) + exp(high)), stabilized by the per-slice maximum so
// large |β·bias| cannot overflow. Reducing a 1-variable table yields a
// scalar.
//
// Complexity: O(2^|scope|).
func (t *Table) ReduceLogSumExp(v int) (*Table, error) {
	p, ok := t.HasVar(v)
	if !ok {
		return nil, ErrVarNotInScope
	}

	var (
		res    = &Table{vars: removeAt(t.vars, p), values: make([]float64, len(t.values)/2)}
		stride = 1 << p
		j      int
		full   int
	)
	for j = range res.values {
		full = expand(j, p)
		res.values[j] = logAddExp(t.values[full], t.values[full|stride])
	}

	return res, nil
}

// Project log-sum-exps out every scope variable not listed in keep and
// returns the table over keep (which must be a subset of the scope, in
// ascending order). Projecting onto the full scope returns a copy.
func (t *Table) Project(keep []int) (*Table, error) {
	if err := checkScope(keep); err != nil {
		return nil, err
	}

	var (
		cur = t
		err error
		k   int
	)
	// Verify keep ⊆ scope before reducing anything.
	for _, v := range keep {
		if _, ok := t.HasVar(v); !ok {
			return nil, ErrScopeNotSubset
		}
	}
	for _, v := range t.vars {
		if k < len(keep) && keep[k] == v {
			k++

			continue
		}
		if cur, err = cur.ReduceLogSumExp(v); err != nil {
			return nil, err
		}
	}
	if cur == t { // full-scope projection: keep immutability, hand out a copy
		cur = &Table{vars: t.Vars(), values: t.Values()}
	}

	return cur, nil
}
