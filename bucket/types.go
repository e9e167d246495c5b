// Package bucket: sentinel errors, results, and configuration options for
// the Solver and Sampler engines.
package bucket

import (
	"errors"

	"github.com/katalvlaran/treedp/bqm"
)

// DefaultMaxTreewidth is the default complexity ceiling: orders whose
// induced width exceeds it are rejected, because the largest elimination
// table holds 2^(width+1) entries.
const DefaultMaxTreewidth = 25

// DefaultBeta is the default inverse temperature of the Boltzmann
// distribution sampled by Sampler.
const DefaultBeta = 3.0

// Sentinel errors for engine invocation.
var (
	// ErrNilModel indicates a nil *bqm.Model was passed to Solve or Sample.
	ErrNilModel = errors.New("bucket: model is nil")

	// ErrBadMaxSolutions indicates MaxSolutions < 1.
	ErrBadMaxSolutions = errors.New("bucket: MaxSolutions must be >= 1")

	// ErrBadNumReads indicates a negative NumReads.
	ErrBadNumReads = errors.New("bucket: NumReads must be >= 0")

	// ErrBadBeta indicates a NaN or infinite inverse temperature.
	ErrBadBeta = errors.New("bucket: beta must be finite")

	// ErrBadMaxTreewidth indicates a negative treewidth ceiling.
	ErrBadMaxTreewidth = errors.New("bucket: MaxTreewidth must be >= 0")
)

// Option configures a Solver or Sampler at construction time.
type Option func(*config)

// config holds constructor-time engine settings.
type config struct {
	maxTreewidth int
}

// defaultConfig returns the engine defaults.
func defaultConfig() config {
	return config{maxTreewidth: DefaultMaxTreewidth}
}

// WithMaxTreewidth overrides the treewidth ceiling. The ceiling is fixed
// for the lifetime of the engine and readable via MaxTreewidth().
// Must pass a non-negative value; negative values panic.
func WithMaxTreewidth(w int) Option {
	return func(c *config) {
		if w < 0 {
			// Panic to signal invalid configuration early, as option
			// constructors cannot return errors.
			panic(ErrBadMaxTreewidth.Error())
		}
		c.maxTreewidth = w
	}
}

// Solution is one assignment found by Solver, with its exact energy.
type Solution struct {
	// Sample maps every model variable to a domain value
	// (−1/+1 for SPIN, 0/1 for BINARY).
	Sample bqm.Assignment

	// Energy is the exact energy of Sample, offset included.
	Energy float64

	// NumOccurrences is how many of the requested solutions this row
	// stands for. It exceeds 1 only when MaxSolutions is larger than the
	// model's 2^n distinct states and results are tiled.
	NumOccurrences int
}

// SolveResult is the ordered output of Solver.Solve: distinct assignments
// in non-decreasing energy order.
type SolveResult struct {
	// Solutions is sorted by non-decreasing Energy; assignments are
	// globally distinct.
	Solutions []Solution

	// Width is the induced width of the elimination order that was used.
	Width int
}

// SolveOptions configures a single Solve call.
//
//	Order        — explicit elimination order (must be a permutation of the
//	               model's variables). Nil selects the min-fill heuristic.
//	MaxSolutions — how many lowest-energy assignments to return (default 1).
type SolveOptions struct {
	Order        []string
	MaxSolutions int
}

// SolveOption is a functional option for Solver.Solve.
type SolveOption func(*SolveOptions)

// DefaultSolveOptions returns the per-call solve defaults.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{MaxSolutions: 1}
}

// WithOrder supplies an explicit elimination order.
func WithOrder(order []string) SolveOption {
	return func(o *SolveOptions) { o.Order = order }
}

// WithMaxSolutions asks for the k lowest-energy distinct assignments.
// Requests beyond the model's 2^n distinct states are tiled with
// occurrence counts rather than re-invoking elimination.
func WithMaxSolutions(k int) SolveOption {
	return func(o *SolveOptions) { o.MaxSolutions = k }
}

// PairMarginal is the exact joint distribution of one interaction: the
// probability of each (value of U, value of V) configuration, in the
// model's external domain. The four entries sum to 1.
type PairMarginal map[[2]int8]float64

// SampleResult is the output of Sampler.Sample.
type SampleResult struct {
	// Samples holds NumReads assignments drawn exactly from the Boltzmann
	// distribution exp(−β·E)/Z.
	Samples []bqm.Assignment

	// Energies holds the exact energy of each sample, offset included.
	Energies []float64

	// LogPartitionFunction is log Z = log Σ_states exp(−β·E(state)).
	LogPartitionFunction float64

	// VariableMarginals maps each variable to P(variable = high state),
	// i.e. +1 for SPIN and 1 for BINARY. Nil unless marginals were requested.
	VariableMarginals map[string]float64

	// InteractionMarginals holds the exact pairwise joint for every
	// interaction of the model. Nil unless marginals were requested.
	InteractionMarginals map[bqm.Interaction]PairMarginal

	// Width is the induced width of the elimination order that was used.
	Width int
}

// SampleOptions configures a single Sample call.
//
//	Order     — explicit elimination order; nil selects min-fill.
//	Beta      — inverse temperature (default 3.0); must be finite.
//	NumReads  — number of samples to draw (default 1; 0 is legal and
//	            returns only LogPartitionFunction and marginals).
//	Marginals — whether to compute variable and interaction marginals
//	            (default true).
//	Seed      — RNG seed; non-negative values reproduce output bit for
//	            bit, negative values (the default) select a time-based seed.
type SampleOptions struct {
	Order     []string
	Beta      float64
	NumReads  int
	Marginals bool
	Seed      int64
}

// SampleOption is a functional option for Sampler.Sample.
type SampleOption func(*SampleOptions)

// DefaultSampleOptions returns the per-call sampling defaults.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{Beta: DefaultBeta, NumReads: 1, Marginals: true, Seed: -1}
}

// WithSampleOrder supplies an explicit elimination order.
func WithSampleOrder(order []string) SampleOption {
	return func(o *SampleOptions) { o.Order = order }
}

// WithBeta sets the inverse temperature of the sampled Boltzmann
// distribution.
func WithBeta(beta float64) SampleOption {
	return func(o *SampleOptions) { o.Beta = beta }
}

// WithNumReads sets the number of samples to draw.
func WithNumReads(n int) SampleOption {
	return func(o *SampleOptions) { o.NumReads = n }
}

// WithMarginals toggles computation of variable and interaction marginals.
func WithMarginals(compute bool) SampleOption {
	return func(o *SampleOptions) { o.Marginals = compute }
}

// WithSeed fixes the sampler RNG seed. Identical (model, order, beta,
// seed) reproduces samples bit for bit; pass a negative value to restore
// the default time-based seeding.
func WithSeed(seed int64) SampleOption {
	return func(o *SampleOptions) { o.Seed = seed }
}
