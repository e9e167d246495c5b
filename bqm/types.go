// Package bqm: core types, sentinel errors and the vartype domain mapping.
package bqm

import "errors"

// Sentinel errors for model construction and evaluation.
var (
	// ErrSelfLoop indicates a quadratic bias whose endpoints are the same variable.
	ErrSelfLoop = errors.New("bqm: self-loop quadratic bias not allowed")

	// ErrVariableNotFound indicates an operation referenced a variable absent from the model.
	ErrVariableNotFound = errors.New("bqm: variable not found")

	// ErrBadValue indicates an assignment value outside the model's two-state domain.
	ErrBadValue = errors.New("bqm: assignment value outside vartype domain")
)

// Vartype selects the external two-valued domain of a model.
//
// Internally the engine always works on {0,1} states; Vartype only controls
// the affine map applied at the model boundary:
//
//	Spin:   state 0 ↦ −1, state 1 ↦ +1
//	Binary: state 0 ↦  0, state 1 ↦  1
type Vartype int

const (
	// Spin variables take values in {−1,+1} (Ising form).
	Spin Vartype = iota

	// Binary variables take values in {0,1} (QUBO form).
	Binary
)

// String returns the conventional name of the vartype.
func (vt Vartype) String() string {
	if vt == Spin {
		return "SPIN"
	}

	return "BINARY"
}

// Low returns the external value of the internal low state (0):
// −1 for Spin, 0 for Binary.
func (vt Vartype) Low() int8 {
	if vt == Spin {
		return -1
	}

	return 0
}

// High returns the external value of the internal high state (1),
// which is +1 for both vartypes.
func (vt Vartype) High() int8 { return 1 }

// Value maps an internal state (0 or 1) to the external domain value.
func (vt Vartype) Value(state int8) int8 {
	if state == 0 {
		return vt.Low()
	}

	return vt.High()
}

// State maps an external domain value back to the internal state (0 or 1).
// Returns ErrBadValue if v is not a legal value for this vartype.
func (vt Vartype) State(v int8) (int8, error) {
	switch v {
	case vt.Low():
		return 0, nil
	case vt.High():
		return 1, nil
	default:
		return 0, ErrBadValue
	}
}

// Assignment maps variable names to external domain values
// (−1/+1 for Spin models, 0/1 for Binary models).
type Assignment map[string]int8

// Interaction is a normalized unordered variable pair carrying a quadratic
// bias: U is always the lexicographically smaller name.
type Interaction struct {
	// U is the lexicographically smaller endpoint.
	U string

	// V is the lexicographically larger endpoint.
	V string
}

// NewInteraction normalizes (u, v) into canonical order.
func NewInteraction(u, v string) Interaction {
	if v < u {
		u, v = v, u
	}

	return Interaction{U: u, V: v}
}
