package bqm

// Model is a binary quadratic model: linear biases, normalized pairwise
// quadratic biases, a constant offset and a vartype.
//
// Variables are registered in insertion order and never removed, so all
// iteration over a Model is deterministic. A Model is not safe for
// concurrent mutation; once fully built it may be read from any number of
// goroutines (the treedp engine only reads).
type Model struct {
	vartype Vartype

	// names holds variables in insertion order; index is its inverse.
	names []string
	index map[string]int

	linear map[string]float64

	// pairs holds interactions in insertion order; quad is the bias lookup.
	pairs []Interaction
	quad  map[Interaction]float64

	// adj[v] is the set of neighbors of v in the interaction graph.
	adj map[string]map[string]struct{}

	offset float64
}

// NewModel returns an empty model with the given vartype.
func NewModel(vt Vartype) *Model {
	return &Model{
		vartype: vt,
		index:   make(map[string]int),
		linear:  make(map[string]float64),
		quad:    make(map[Interaction]float64),
		adj:     make(map[string]map[string]struct{}),
	}
}

// Vartype reports the external domain of the model.
func (m *Model) Vartype() Vartype { return m.vartype }

// AddVariable registers v with a zero linear bias if it is not already
// present. Returns true if the variable was newly added.
func (m *Model) AddVariable(v string) bool {
	if _, ok := m.index[v]; ok {
		return false
	}
	m.index[v] = len(m.names)
	m.names = append(m.names, v)
	m.adj[v] = make(map[string]struct{})

	return true
}

// HasVariable reports whether v belongs to the model.
func (m *Model) HasVariable(v string) bool {
	_, ok := m.index[v]

	return ok
}

// Index returns the insertion index of v, or (0, false) if absent.
func (m *Model) Index(v string) (int, bool) {
	i, ok := m.index[v]

	return i, ok
}

// SetLinear sets the linear bias of v, registering v if needed.
func (m *Model) SetLinear(v string, bias float64) {
	m.AddVariable(v)
	m.linear[v] = bias
}

// AddLinear adds bias to the current linear bias of v, registering v if needed.
func (m *Model) AddLinear(v string, bias float64) {
	m.AddVariable(v)
	m.linear[v] += bias
}

// Linear returns the linear bias of v (zero for registered variables with
// no explicit bias, and for unknown variables).
func (m *Model) Linear(v string) float64 { return m.linear[v] }

// SetQuadratic sets the quadratic bias of the unordered pair (u, v),
// registering both endpoints if needed. Returns ErrSelfLoop when u == v.
func (m *Model) SetQuadratic(u, v string, bias float64) error {
	if u == v {
		return ErrSelfLoop
	}
	m.AddVariable(u)
	m.AddVariable(v)

	key := NewInteraction(u, v)
	if _, seen := m.quad[key]; !seen {
		m.pairs = append(m.pairs, key)
		m.adj[u][v] = struct{}{}
		m.adj[v][u] = struct{}{}
	}
	m.quad[key] = bias

	return nil
}

// AddQuadratic adds bias to the quadratic bias of the unordered pair (u, v),
// registering both endpoints if needed. Returns ErrSelfLoop when u == v.
func (m *Model) AddQuadratic(u, v string, bias float64) error {
	cur, _ := m.Quadratic(u, v)

	return m.SetQuadratic(u, v, cur+bias)
}

// Quadratic returns the quadratic bias of the unordered pair (u, v) and
// whether the interaction exists.
func (m *Model) Quadratic(u, v string) (float64, bool) {
	bias, ok := m.quad[NewInteraction(u, v)]

	return bias, ok
}

// SetOffset sets the constant energy offset.
func (m *Model) SetOffset(offset float64) { m.offset = offset }

// Offset returns the constant energy offset.
func (m *Model) Offset() float64 { return m.offset }

// NumVariables returns the number of registered variables.
func (m *Model) NumVariables() int { return len(m.names) }

// NumInteractions returns the number of distinct quadratic biases.
func (m *Model) NumInteractions() int { return len(m.pairs) }

// Variables returns the variables in insertion order. The slice is a copy.
func (m *Model) Variables() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)

	return out
}

// Interactions returns the normalized interactions in insertion order.
// The slice is a copy.
func (m *Model) Interactions() []Interaction {
	out := make([]Interaction, len(m.pairs))
	copy(out, m.pairs)

	return out
}

// Degree returns the number of interaction-graph neighbors of v.
func (m *Model) Degree(v string) int { return len(m.adj[v]) }

// Neighbors returns the interaction-graph neighbors of v in insertion
// order of the variables. The slice is freshly allocated.
func (m *Model) Neighbors(v string) []string {
	set, ok := m.adj[v]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))

	// Walk names rather than the set for deterministic output.
	var name string
	for _, name = range m.names {
		if _, adjacent := set[name]; adjacent {
			out = append(out, name)
		}
	}

	return out
}

// Energy evaluates E(x) = Σ h[v]·x_v + Σ J[u,v]·x_u·x_v + offset for the
// given complete assignment. Every model variable must be assigned a legal
// domain value; otherwise ErrVariableNotFound or ErrBadValue is returned.
func (m *Model) Energy(x Assignment) (float64, error) {
	var (
		e    = m.offset
		v    string
		val  int8
		ok   bool
		err  error
		pair Interaction
	)
	for _, v = range m.names {
		if val, ok = x[v]; !ok {
			return 0, ErrVariableNotFound
		}
		if _, err = m.vartype.State(val); err != nil {
			return 0, err
		}
		e += m.linear[v] * float64(val)
	}
	for _, pair = range m.pairs {
		e += m.quad[pair] * float64(x[pair.U]) * float64(x[pair.V])
	}

	return e, nil
}
