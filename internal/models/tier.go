package models

// Tier is the qualitative strength of a measured correlation.
type Tier int

const (
	// TierBaseline means the correlation is indistinguishable from chance.
	TierBaseline Tier = iota
	// TierModerate means a visible but not conclusive correlation.
	TierModerate
	// TierStrong means a correlation that clearly stands out.
	TierStrong
)

// String returns a string representation of the tier
func (t Tier) String() string {
	switch t {
	case TierStrong:
		return "strong"
	case TierModerate:
		return "moderate"
	case TierBaseline:
		return "baseline"
	default:
		return "unknown"
	}
}

// Label returns the human-readable interpretation shown next to a result.
func (t Tier) Label() string {
	switch t {
	case TierStrong:
		return "Strong correlation"
	case TierModerate:
		return "Moderate correlation"
	default:
		return "Baseline (chance-like)"
	}
}

// Tone is the display hint for a tier: good, warn or bad.
func (t Tier) Tone() string {
	switch t {
	case TierStrong:
		return "good"
	case TierModerate:
		return "warn"
	default:
		return "bad"
	}
}

// MarshalText encodes the tier as its string form.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Decoherence characterizes a configured noise level, independent of any
// measured outcome.
type Decoherence int

const (
	DecoherenceLow Decoherence = iota
	DecoherenceMedium
	DecoherenceHigh
	DecoherenceSevere
)

// String returns a string representation of the decoherence level
func (d Decoherence) String() string {
	switch d {
	case DecoherenceLow:
		return "low"
	case DecoherenceMedium:
		return "medium"
	case DecoherenceHigh:
		return "high"
	case DecoherenceSevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Label returns the human-readable description of the decoherence level.
func (d Decoherence) Label() string {
	switch d {
	case DecoherenceLow:
		return "Low (coherent)"
	case DecoherenceMedium:
		return "Medium (partially coherent)"
	case DecoherenceHigh:
		return "High (fragile)"
	default:
		return "Severe (decohered)"
	}
}

// MarshalText encodes the decoherence level as its string form.
func (d Decoherence) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
