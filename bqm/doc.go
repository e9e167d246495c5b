// Package bqm implements the binary quadratic model container consumed by
// the treedp inference engine.
//
// A binary quadratic model (BQM) is a pairwise energy function over
// two-valued variables:
//
//	E(x) = Σ_v  h[v]·x_v  +  Σ_{u<v}  J[u,v]·x_u·x_v  +  offset
//
// where the variable domain is either SPIN (x ∈ {−1,+1}) or BINARY
// (x ∈ {0,1}). The same polynomial describes both an Ising problem and a
// QUBO; ChangeVartype converts between the two representations through the
// fixed affine map x = 2b − 1 while preserving energies exactly.
//
// The container is deliberately simple:
//
//   - Variables are opaque string identifiers, registered in insertion
//     order so every iteration over the model is deterministic.
//   - Quadratic keys are unordered pairs, normalized so the
//     lexicographically smaller name comes first; self-loops are rejected.
//   - Every endpoint of a quadratic bias is automatically a variable of the
//     model, so the invariant "quadratic ⊆ variables × variables" holds by
//     construction.
//
// Complexity: all accessors are O(1); Energy is O(V + E); ChangeVartype is
// O(V + E).
//
// Errors (sentinel):
//
//	ErrSelfLoop         — quadratic bias with identical endpoints.
//	ErrVariableNotFound — assignment or query references an unknown variable.
//	ErrBadValue         — assignment value outside the model's domain.
package bqm
