package models

import "github.com/jarch13/Entangle.Me/internal/constants"

// CorrelationResult pairs a candidate with its correlation to the reference.
type CorrelationResult struct {
	// Candidate is the zero-based candidate index in [0, N).
	Candidate int `json:"candidate"`

	// Correlation is the mean elementwise product, in [-1, 1].
	Correlation float64 `json:"correlation"`

	// Tier is the qualitative strength of |Correlation|.
	Tier Tier `json:"tier"`
}

// Params are the inputs of a single probe.
type Params struct {
	// Trials is the sequence length T.
	Trials int `json:"trials" yaml:"trials"`

	// Candidates is the pool size N.
	Candidates int `json:"candidates" yaml:"candidates"`

	// Noise is the flip probability p applied to the linked candidate.
	Noise float64 `json:"noise" yaml:"noise"`
}

// Report is everything a probe reveals to its caller.
// It never identifies the linked candidate.
type Report struct {
	// RunID uniquely identifies this probe in logs and decision traces.
	RunID string `json:"run_id"`

	Trials     int     `json:"trials"`
	Candidates int     `json:"candidates"`
	NoiseLevel float64 `json:"noise_level"`

	// Expected is the theoretical correlation of the linked candidate, clamp(1-2p).
	Expected float64 `json:"expected"`

	// Decoherence labels the configured noise level.
	Decoherence Decoherence `json:"decoherence"`

	// Results are sorted by |Correlation| descending.
	Results []CorrelationResult `json:"results"`

	// Top is Results[0].
	Top CorrelationResult `json:"top"`

	// Band is the qualitative band of Expected; Status is its display text.
	Band   constants.StatusBand `json:"band"`
	Status string               `json:"status"`
}
