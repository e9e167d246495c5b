// Package bucket - RNG utilities for backward sampling.
//
// This file centralizes deterministic random generation for the Sampler.
//
// Goals:
//   - Determinism: same seed ⇒ identical samples across platforms.
//   - Encapsulation: a single seed policy; the forward elimination pass
//     never touches randomness.
//   - Independence: each read draws from its own derived stream, so reads
//     could be distributed across workers without changing output.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each read owns its derived
//     *rand.Rand exclusively.
package bucket

import (
	"math/rand"
	"time"
)

// resolveSeed applies the seed policy: seed < 0 ⇒ time-based seed
// (non-reproducible); seed >= 0 is used verbatim, making sampling fully
// reproducible.
//
// Complexity: O(1).
func resolveSeed(seed int64) int64 {
	if seed < 0 {
		return time.Now().UnixNano()
	}

	return seed
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed using a SplitMix64-style finalizer (Vigna 2014). Derived streams
// are decorrelated even for adjacent stream ids, so the per-read RNGs
// built from one user seed stay independent.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x >> 1) // derived seeds stay non-negative
}

// readRNG returns the RNG stream for one read.
func readRNG(parent int64, read int) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(parent, uint64(read))))
}
