package tiering

import (
	"math"
	"testing"

	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
)

func TestClassifyCorrelation_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		c    float64
		want models.Tier
	}{
		{"exactly strong", 0.70, models.TierStrong},
		{"just below strong", 0.6999, models.TierModerate},
		{"exactly moderate", 0.35, models.TierModerate},
		{"just below moderate", 0.3499, models.TierBaseline},
		{"perfect", 1.0, models.TierStrong},
		{"zero", 0, models.TierBaseline},
		{"negative strong", -0.70, models.TierStrong},
		{"negative just below strong", -0.6999, models.TierModerate},
		{"negative moderate", -0.35, models.TierModerate},
		{"negative baseline", -0.3499, models.TierBaseline},
		{"perfect anti-correlation", -1.0, models.TierStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCorrelation(tt.c); got != tt.want {
				t.Errorf("ClassifyCorrelation(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestClassifyNoise_Boundaries(t *testing.T) {
	tests := []struct {
		p    float64
		want models.Decoherence
	}{
		{0, models.DecoherenceLow},
		{0.10, models.DecoherenceLow},
		{0.1001, models.DecoherenceMedium},
		{0.30, models.DecoherenceMedium},
		{0.3001, models.DecoherenceHigh},
		{0.55, models.DecoherenceHigh},
		{0.5501, models.DecoherenceSevere},
		{1, models.DecoherenceSevere},
	}

	for _, tt := range tests {
		if got := ClassifyNoise(tt.p); got != tt.want {
			t.Errorf("ClassifyNoise(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// Severe decoherence at p=1 is still a strong (anti-)correlation.
func TestSevereNoiseIsStillDetectable(t *testing.T) {
	expected := ExpectedCorrelation(1)
	if expected != -1 {
		t.Fatalf("ExpectedCorrelation(1) = %v, want -1", expected)
	}
	if ClassifyNoise(1) != models.DecoherenceSevere {
		t.Error("p=1 should be severe decoherence")
	}
	if ClassifyCorrelation(expected) != models.TierStrong {
		t.Error("p=1 linked candidate should classify as strong")
	}
	if Band(expected) != constants.BandObvious {
		t.Errorf("Band(-1) = %v, want obvious", Band(expected))
	}
}

func TestExpectedCorrelation(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 0.5},
		{0.5, 0},
		{0.75, -0.5},
		{1, -1},
	}

	for _, tt := range tests {
		if got := ExpectedCorrelation(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ExpectedCorrelation(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		noise    float64
		want     string
		wantBand constants.StatusBand
	}{
		{"clean", 0, "Done — correlations should be obvious", constants.BandObvious},
		{"low noise", 0.1, "Done — correlations should be obvious", constants.BandObvious},
		{"medium noise", 0.25, "Done — correlations may need more trials", constants.BandMoreTrials},
		{"half noise", 0.5, "Done — high noise can mask correlations", constants.BandMasked},
		{"inverted", 0.95, "Done — correlations should be obvious", constants.BandObvious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := ExpectedCorrelation(tt.noise)
			if got := Status(expected); got != tt.want {
				t.Errorf("Status(%v) = %q, want %q", expected, got, tt.want)
			}
			if got := Band(expected); got != tt.wantBand {
				t.Errorf("Band(%v) = %v, want %v", expected, got, tt.wantBand)
			}
		})
	}
}
