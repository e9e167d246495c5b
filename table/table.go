package table

// Table is a dense potential over a strictly ascending scope of two-state
// variables. Entry i holds the value of the assignment whose state of
// scope variable k is bit k of i. Tables are immutable once built.
type Table struct {
	vars   []int
	values []float64
}

// checkScope validates that vars is strictly ascending and indexable.
func checkScope(vars []int) error {
	if len(vars) > maxScopeBits {
		return ErrScopeTooLarge
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1] >= vars[i] {
			return ErrScopeNotSorted
		}
	}

	return nil
}

// New returns a zero-valued table over the given scope. The scope slice is
// copied.
func New(vars []int) (*Table, error) {
	if err := checkScope(vars); err != nil {
		return nil, err
	}
	scope := make([]int, len(vars))
	copy(scope, vars)

	return &Table{vars: scope, values: make([]float64, 1<<len(scope))}, nil
}

// FromValues returns a table over the given scope with the given values.
// Both slices are copied; len(values) must be exactly 2^|vars|.
func FromValues(vars []int, values []float64) (*Table, error) {
	t, err := New(vars)
	if err != nil {
		return nil, err
	}
	if len(values) != len(t.values) {
		return nil, ErrBadLength
	}
	copy(t.values, values)

	return t, nil
}

// Scalar returns a 0-dimensional table holding a single value.
func Scalar(v float64) *Table {
	return &Table{values: []float64{v}}
}

// Vars returns a copy of the scope.
func (t *Table) Vars() []int {
	out := make([]int, len(t.vars))
	copy(out, t.vars)

	return out
}

// NumVars returns the scope size.
func (t *Table) NumVars() int { return len(t.vars) }

// Size returns the number of stored values, 2^|scope|.
func (t *Table) Size() int { return len(t.values) }

// IsScalar reports whether the table is 0-dimensional.
func (t *Table) IsScalar() bool { return len(t.vars) == 0 }

// Value returns the i-th stored value; i is the bit-packed assignment.
func (t *Table) Value(i int) float64 { return t.values[i] }

// Values returns a copy of all stored values in index order.
func (t *Table) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)

	return out
}

// HasVar reports whether v is in the scope, and its bit position if so.
func (t *Table) HasVar(v int) (int, bool) {
	var lo, hi = 0, len(t.vars)
	for lo < hi { // scope is sorted; binary search
		mid := (lo + hi) / 2
		if t.vars[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(t.vars) && t.vars[lo] == v {
		return lo, true
	}

	return 0, false
}

// Index packs a state vector aligned with the scope (states[k] is the
// state of scope variable k, 0 or 1) into a value index.
func (t *Table) Index(states []int8) (int, error) {
	if len(states) != len(t.vars) {
		return 0, ErrBadStates
	}
	var idx int
	for k, s := range states {
		switch s {
		case 0:
		case 1:
			idx |= 1 << k
		default:
			return 0, ErrBadStates
		}
	}

	return idx, nil
}

// mergeVars returns the sorted union of two strictly ascending scopes.
func mergeVars(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i, j = i+1, j+1
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

// strides maps each bit position of the union scope to the corresponding
// stride in a sub-scope (0 when the union variable is absent there).
func strides(union, sub []int) []int {
	var (
		out = make([]int, len(union))
		j   int
	)
	for k, v := range union {
		if j < len(sub) && sub[j] == v {
			out[k] = 1 << j
			j++
		}
	}

	return out
}

// gather maps a union index to a sub-scope index through a stride table.
func gather(idx int, stride []int) int {
	var sub int
	for k := 0; idx != 0; k, idx = k+1, idx>>1 {
		if idx&1 == 1 {
			sub += stride[k]
		}
	}

	return sub
}

// Combine returns the elementwise sum of t and o over the sorted union of
// their scopes, broadcasting both operands. This single operation covers
// both engine modes: energies add in min-sum and log-weights add in
// sum-product.
//
// Complexity: O(u·2^u), u = |scope union|.
func (t *Table) Combine(o *Table) (*Table, error) {
	union := mergeVars(t.vars, o.vars)
	if len(union) > maxScopeBits {
		return nil, ErrScopeTooLarge
	}

	var (
		res = &Table{vars: union, values: make([]float64, 1<<len(union))}
		ts  = strides(union, t.vars)
		os  = strides(union, o.vars)
		r   int
	)
	for r = range res.values {
		res.values[r] = t.values[gather(r, ts)] + o.values[gather(r, os)]
	}

	return res, nil
}

// CombineAll folds tables left to right with Combine. The result's size is
// bounded by the union of all scopes — no intermediate ever exceeds it.
// An empty input yields the zero scalar (the additive identity).
func CombineAll(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return Scalar(0), nil
	}
	var (
		acc = tables[0]
		err error
	)
	for _, t := range tables[1:] {
		if acc, err = acc.Combine(t); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// Divide returns t minus o broadcast over t's scope; o's scope must be a
// subset of t's. In log-domain terms this divides out the factor o, which
// is how the downward marginal pass removes a child's upward message from
// its parent's belief.
func (t *Table) Divide(o *Table) (*Table, error) {
	os := strides(t.vars, o.vars)
	// strides only consumes o.vars entries it finds in t.vars; verify all matched.
	var matched int
	for _, s := range os {
		if s != 0 {
			matched++
		}
	}
	if matched != len(o.vars) {
		return nil, ErrScopeNotSubset
	}

	var (
		res = &Table{vars: t.Vars(), values: make([]float64, len(t.values))}
		r   int
	)
	for r = range res.values {
		res.values[r] = t.values[r] - o.values[gather(r, os)]
	}

	return res, nil
}
