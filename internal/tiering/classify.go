package tiering

import (
	"math"

	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
)

// ClassifyCorrelation maps a measured correlation to its tier by |c|.
// Anti-correlation is as strong as correlation: -1 is TierStrong.
func ClassifyCorrelation(c float64) models.Tier {
	abs := math.Abs(c)
	if abs >= constants.StrongCorrelationThreshold {
		return models.TierStrong
	}
	if abs >= constants.ModerateCorrelationThreshold {
		return models.TierModerate
	}
	return models.TierBaseline
}

// ClassifyNoise labels a configured noise level. It says nothing about a
// measured outcome: p near 1 is Severe yet yields |c| near 1.
func ClassifyNoise(p float64) models.Decoherence {
	switch {
	case p <= constants.LowNoiseCeiling:
		return models.DecoherenceLow
	case p <= constants.MediumNoiseCeiling:
		return models.DecoherenceMedium
	case p <= constants.HighNoiseCeiling:
		return models.DecoherenceHigh
	default:
		return models.DecoherenceSevere
	}
}

// ExpectedCorrelation is the theoretical correlation of the linked candidate
// for flip probability p: (1-p) - p, clamped to [-1, 1].
func ExpectedCorrelation(p float64) float64 {
	return clamp(1-2*p, -1, 1)
}

// Band classifies the expected correlation into a status band.
func Band(expected float64) constants.StatusBand {
	abs := math.Abs(expected)
	if abs >= constants.StrongCorrelationThreshold {
		return constants.BandObvious
	}
	if abs >= constants.ModerateCorrelationThreshold {
		return constants.BandMoreTrials
	}
	return constants.BandMasked
}

// Status returns the aggregate status text for a completed probe.
func Status(expected float64) string {
	return constants.StatusDone + Band(expected).Suffix()
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
