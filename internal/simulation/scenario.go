package simulation

import (
	"fmt"
	"strconv"

	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/probe"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name string

	// Params are the probe parameters used for every repetition.
	Params models.Params

	// Repetitions is the number of probes to run. 0 means DefaultRepetitions.
	Repetitions int

	// Seed seeds the engine's random source. 0 draws a fresh seed.
	Seed uint64

	// KeepLinked keeps the first linked candidate for every repetition
	// instead of re-rolling before each probe.
	KeepLinked bool
}

// WithNoise returns a copy of the scenario at noise level p, named after it.
func (s Scenario) WithNoise(p float64) Scenario {
	out := s
	out.Params.Noise = p
	out.Name = fmt.Sprintf("%s/p=%s", s.Name, strconv.FormatFloat(p, 'f', -1, 64))
	return out
}

func (s Scenario) repetitions() int {
	if s.Repetitions <= 0 {
		return constants.DefaultRepetitions
	}
	return s.Repetitions
}

// Validate checks the probe parameters.
func (s Scenario) Validate() error {
	if err := probe.ValidateParams(s.Params); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

// RunResult captures the outcome of a single probe.
type RunResult struct {
	Index int
	RunID string

	// Linked is the hidden linked candidate for this probe.
	Linked int

	// LinkedCorrelation is the measured correlation of the linked candidate.
	LinkedCorrelation float64

	// LinkedRank is the linked candidate's zero-based position in the ranking.
	LinkedRank int

	// Top is the best-ranked result.
	Top models.CorrelationResult

	// Report is the full probe report.
	Report *models.Report
}

// Hit reports whether the linked candidate ranked first.
func (r RunResult) Hit() bool {
	return r.LinkedRank == 0
}

// Result aggregates all repetitions of a scenario.
type Result struct {
	Scenario Scenario
	Runs     []RunResult

	// Expected is the theoretical linked correlation clamp(1-2p).
	Expected float64

	// MeanLinked and StdDevLinked summarize LinkedCorrelation across runs.
	MeanLinked   float64
	StdDevLinked float64

	// MeanTopAbs is the mean |c| of the top-ranked candidate.
	MeanTopAbs float64

	// DetectionRate is the fraction of runs where the linked candidate ranked first.
	DetectionRate float64
}
