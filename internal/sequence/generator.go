// Package sequence builds the reference and candidate outcome sequences of a probe.
package sequence

import (
	"fmt"
	"math"

	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/random"
)

// Generator draws sequences from a random.Source.
// It holds no state of its own beyond the source.
type Generator struct {
	src random.Source
}

// NewGenerator creates a generator consuming draws from src.
func NewGenerator(src random.Source) *Generator {
	return &Generator{src: src}
}

// Reference returns T independent bipolar draws.
func (g *Generator) Reference(trials int) (models.Sequence, error) {
	return g.independent(trials)
}

// Baseline returns T independent bipolar draws for a non-linked candidate.
func (g *Generator) Baseline(trials int) (models.Sequence, error) {
	return g.independent(trials)
}

// Linked returns a noisy copy of reference: each position is sign-flipped
// when a uniform draw falls below p. p = 1 yields the exact negation.
func (g *Generator) Linked(reference models.Sequence, p float64) (models.Sequence, error) {
	if err := ValidateNoise(p); err != nil {
		return models.Sequence{}, err
	}
	if err := ValidateTrials(reference.Len()); err != nil {
		return models.Sequence{}, fmt.Errorf("reference: %w", err)
	}

	out := make([]int8, reference.Len())
	for t := range out {
		v := reference.At(t)
		if g.src.Uniform() < p {
			v = -v
		}
		out[t] = v
	}
	return models.SequenceFrom(out), nil
}

func (g *Generator) independent(trials int) (models.Sequence, error) {
	if err := ValidateTrials(trials); err != nil {
		return models.Sequence{}, err
	}
	out := make([]int8, trials)
	for t := range out {
		out[t] = g.src.Bipolar()
	}
	return models.SequenceFrom(out), nil
}

// ValidateTrials checks that T is in [1, MaxTrials].
func ValidateTrials(trials int) error {
	if trials < 1 || trials > constants.MaxTrials {
		return fmt.Errorf("trials must be in [1, %d], got %d: %w", constants.MaxTrials, trials, models.ErrInvalidParameter)
	}
	return nil
}

// ValidateNoise checks that p is a finite probability.
func ValidateNoise(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("noise must be in [0, 1], got %v: %w", p, models.ErrInvalidParameter)
	}
	return nil
}
