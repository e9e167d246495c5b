// Package table implements the dense potential tables that bucket
// elimination computes with.
//
// A Table holds one float64 per joint assignment of its scope — an ordered
// tuple of variable indices with two states each. The scope is kept
// strictly ascending and the storage is bit-packed: bit k of a value's
// index is the state of scope variable k, so a table over w variables has
// exactly 2^w entries. Tables are immutable once built; every operation
// allocates its result.
//
// Operations:
//
//   - Combine     — elementwise addition over the sorted union of two
//     scopes, broadcasting each operand. Addition covers both engine
//     modes: energies add in min-sum, and log-domain weights add where
//     probabilities would multiply in sum-product.
//   - Divide      — elementwise subtraction with broadcast (log-domain
//     division), used by the downward pass that turns the elimination
//     trace into marginals.
//   - ReduceMin   — eliminates one variable by minimization, returning the
//     reduced table plus the argmin witness per remaining assignment.
//     Ties pick state 0 so traceback is deterministic.
//   - ReduceLogSumExp — eliminates one variable by log-sum-exp, stabilized
//     by subtracting the per-slice maximum so large |β·bias| cannot
//     overflow.
//   - Project     — log-sum-exp out every variable not in the kept scope.
//
// Eliminating the last scope variable legitimately yields a 0-dimensional
// scalar table; callers fold those into running accumulators.
//
// Complexity: Combine is O(u·2^u) for a scope union of size u (the
// dominant cost of the whole engine, bounded by the treewidth ceiling);
// reductions are O(2^w).
package table
