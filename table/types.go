// Package table: sentinel error set.
package table

import "errors"

// maxScopeBits bounds table scopes purely against index overflow; the
// engine's treewidth ceiling rejects oversized scopes long before this.
const maxScopeBits = 40

// Sentinel errors for table construction and operations.
var (
	// ErrScopeNotSorted indicates a scope that is not strictly ascending.
	ErrScopeNotSorted = errors.New("table: scope must be strictly ascending")

	// ErrScopeTooLarge indicates a scope too wide to index (2^|scope| overflow).
	ErrScopeTooLarge = errors.New("table: scope too large")

	// ErrBadLength indicates a values slice whose length is not 2^|scope|.
	ErrBadLength = errors.New("table: values length must be 2^|scope|")

	// ErrVarNotInScope indicates a reduction or lookup over a variable
	// absent from the table's scope.
	ErrVarNotInScope = errors.New("table: variable not in scope")

	// ErrScopeNotSubset indicates a Divide or Project whose argument scope
	// is not contained in the receiver's scope.
	ErrScopeNotSubset = errors.New("table: scope is not a subset")

	// ErrBadStates indicates a state vector whose length or values do not
	// match the scope (states are 0 or 1 per scope variable).
	ErrBadStates = errors.New("table: bad state vector")
)
