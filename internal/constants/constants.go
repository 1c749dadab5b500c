// Package constants provides named constants used throughout the resonance codebase.
// This centralizes thresholds and limits so the classifier, engine and CLI agree.
package constants

// Correlation tier thresholds, applied to |c|.
// These are fixed design constants and are never read from configuration.
const (
	// StrongCorrelationThreshold is the minimum |c| classified as a strong correlation.
	StrongCorrelationThreshold = 0.70

	// ModerateCorrelationThreshold is the minimum |c| classified as a moderate correlation.
	// Anything below this is baseline (chance-like).
	ModerateCorrelationThreshold = 0.35
)

// Decoherence boundaries, applied to the configured noise level p.
// Each boundary is inclusive on its upper end (p <= boundary).
const (
	// LowNoiseCeiling is the largest noise level labelled low decoherence.
	LowNoiseCeiling = 0.10

	// MediumNoiseCeiling is the largest noise level labelled medium decoherence.
	MediumNoiseCeiling = 0.30

	// HighNoiseCeiling is the largest noise level labelled high decoherence.
	// Anything above it is severe.
	HighNoiseCeiling = 0.55
)

// Probe size limits. A probe is O(T*N) so these keep adversarial inputs from
// exhausting memory.
const (
	// MaxTrials is the largest accepted sequence length T.
	MaxTrials = 100_000

	// MaxCandidates is the largest accepted candidate pool size N.
	MaxCandidates = 1_000

	// MaxProbeCells bounds T*N for a single probe.
	MaxProbeCells = 10_000_000
)

// Defaults used when no configuration file is present.
const (
	DefaultTrials     = 200
	DefaultCandidates = 12
	DefaultNoise      = 0.15

	// DefaultRepetitions is the number of probes per noise level in a simulation.
	DefaultRepetitions = 50

	// DefaultSweepWorkers bounds how many noise levels a sweep runs at once.
	DefaultSweepWorkers = 4
)

// Status strings reported after every probe.
const (
	// StatusDone is the base status of a completed probe.
	StatusDone = "Done"

	StatusSuffixObvious    = " — correlations should be obvious"
	StatusSuffixMoreTrials = " — correlations may need more trials"
	StatusSuffixMasked     = " — high noise can mask correlations"

	// StatusReady is shown after the linked candidate has been (re)selected.
	StatusReady = "Ready (hidden linked candidate re-selected)"

	// StatusProbing is shown while a probe is being computed.
	StatusProbing = "Probing correlations…"
)
