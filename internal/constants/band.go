package constants

// StatusBand names the qualitative band a probe's expected correlation falls in.
type StatusBand string

const (
	// BandObvious means |1-2p| >= StrongCorrelationThreshold.
	BandObvious StatusBand = "obvious"

	// BandMoreTrials means |1-2p| >= ModerateCorrelationThreshold.
	BandMoreTrials StatusBand = "more_trials"

	// BandMasked means noise is high enough to hide the linked candidate.
	BandMasked StatusBand = "masked"
)

// Valid returns true if the band is a recognized value.
func (b StatusBand) Valid() bool {
	switch b {
	case BandObvious, BandMoreTrials, BandMasked:
		return true
	}
	return false
}

// String returns the string representation of the band.
func (b StatusBand) String() string {
	return string(b)
}

// Suffix returns the status suffix appended to StatusDone for this band.
func (b StatusBand) Suffix() string {
	switch b {
	case BandObvious:
		return StatusSuffixObvious
	case BandMoreTrials:
		return StatusSuffixMoreTrials
	default:
		return StatusSuffixMasked
	}
}
