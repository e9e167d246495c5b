// Package elimorder validates elimination orders over the interaction graph
// of a binary quadratic model and computes their induced width.
//
// The interaction graph has the model's variables as nodes and an edge for
// every pair carrying a quadratic bias. Eliminating a variable connects all
// of its remaining neighbors pairwise (fill-in) before removing it; the
// induced width of an order is the largest neighbor count observed during
// that process. The width bounds the dynamic-programming tables of the
// bucket engine: the biggest table holds 2^(width+1) entries, which is why
// orders wider than a configured ceiling are rejected outright rather than
// approximated.
//
// Three entry points:
//
//   - Width   — validate that the order is a permutation of the model's
//     variables and compute its induced width. No side effects: the
//     fill-in simulation runs on a working bitset copy of adjacency,
//     never on the model.
//   - Check   — Width plus ceiling enforcement; failure is a
//     *TreewidthError reporting both the achieved width and the ceiling.
//   - MinFill — greedy heuristic producing an order: repeatedly eliminate
//     the variable introducing the fewest fill edges, ties broken by the
//     lowest insertion index. Returns the order and its induced width.
//
// Complexity:
//
//   - Width:   O(n·d²/w) bitset words, where d is the largest degree met
//     during fill-in — each elimination unions the neighborhood into every
//     remaining neighbor.
//   - MinFill: O(n²·d²/w) in the worst case, using a lazy min-heap over
//     fill counts (stale entries are re-scored on pop, the same
//     lazy-decrease-key discipline as a heap-based shortest-path search).
//
// Errors (sentinel):
//
//	ErrNilModel          — nil model passed in.
//	ErrOrderInvalid      — order is not exactly a permutation of the variables.
//	ErrTreewidthExceeded — induced width above the ceiling (wrapped by *TreewidthError).
package elimorder
