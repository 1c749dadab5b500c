// Package random supplies the pseudorandom draws every probe consumes.
//
// Production code uses a PCG-backed Source; tests substitute a Scripted
// source so sequence generation and ranking become fully deterministic.
package random

import (
	"math/rand/v2"
)

// Source produces independent bipolar and uniform draws.
// Implementations must never fail. A Source is not safe for concurrent use
// unless documented otherwise.
type Source interface {
	// Bipolar returns -1 or +1 with equal probability.
	Bipolar() int8

	// Uniform returns a value in [0, 1).
	Uniform() float64
}

// PCGSource is a Source backed by math/rand/v2's PCG generator.
type PCGSource struct {
	rng *rand.Rand
}

// NewSource creates a PCG-backed source. A zero seed draws the seed from the
// runtime's entropy, so results are not reproducible.
func NewSource(seed uint64) *PCGSource {
	hi, lo := seed, seed^0x9e3779b97f4a7c15
	if seed == 0 {
		hi, lo = rand.Uint64(), rand.Uint64()
	}
	return &PCGSource{rng: rand.New(rand.NewPCG(hi, lo))}
}

// Bipolar returns -1 when a uniform draw falls below one half, +1 otherwise.
func (s *PCGSource) Bipolar() int8 {
	if s.rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

// Uniform returns a value in [0, 1).
func (s *PCGSource) Uniform() float64 {
	return s.rng.Float64()
}

// Index returns a uniformly chosen index in [0, n) from a single Uniform draw.
// n must be positive.
func Index(src Source, n int) int {
	idx := int(src.Uniform() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
