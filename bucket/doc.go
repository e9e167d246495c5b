// Package bucket implements bounded-treewidth bucket elimination over
// binary quadratic models, and the two exact engines built on top of it:
//
//   - Solver  — min-sum mode: the global minimum energy, with k-best
//     enumeration of distinct assignments in non-decreasing energy order.
//   - Sampler — sum-product mode in the shifted log domain: the exact log
//     partition function, exact Boltzmann samples via backward sampling,
//     and single-/pairwise-variable marginals.
//
// Both engines share one forward pass. The model is first mapped into
// index space, where a variable's index is its position in the validated
// elimination order. One singleton table is seeded per variable (its
// linear bias through the vartype affine map — zero-bias and isolated
// variables included, so disconnected components need no special casing)
// and one pair table per interaction, scaled by +1 for min-sum and −β for
// sum-product. Walking the order left to right, the bucket of the current
// variable is combined into a single table, the variable is reduced out
// (min or stabilized logsumexp), and the result is forwarded to the bucket
// of its lowest remaining scope variable — or folded into the scalar
// accumulator when nothing remains. The elimination trace (combined table,
// message, argmin witness, separator) is retained per variable; it is all
// that traceback, backward sampling and the downward marginal pass need.
//
// Reconstruction never recurses: k-best traceback is an explicit
// best-first search over the non-negative residuals (combined table minus
// its message) driven by a binary heap, and backward sampling is a plain
// reverse loop drawing each variable from its exact conditional given the
// already-sampled separator.
//
// Complexity: the forward pass costs O(n·w·2^(w+1)) time and
// O(n·2^(w+1)) memory for induced width w — which is why the treewidth
// ceiling (default 25, a read-only property of each engine) is enforced
// before any table is allocated. Each read and each traceback step is
// cheap relative to the forward pass.
//
// Determinism: identical (model, order, beta, seed) reproduces output bit
// for bit. Randomness enters only through the sampler's seeded generator
// during backward sampling, never during forward elimination.
//
// Errors (sentinel):
//
//	ErrNilModel        — nil model passed to Solve or Sample.
//	ErrBadMaxSolutions — MaxSolutions < 1.
//	ErrBadNumReads     — NumReads < 0.
//	ErrBadBeta         — beta is NaN or infinite.
//
// Order validation and treewidth failures are surfaced from package
// elimorder (ErrOrderInvalid, *TreewidthError wrapping
// ErrTreewidthExceeded) before any heavy computation.
package bucket
