package simulation

import (
	"context"
	"fmt"
	"math"

	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/probe"
	"github.com/jarch13/Entangle.Me/internal/random"
	"github.com/jarch13/Entangle.Me/internal/ranking"
	"github.com/jarch13/Entangle.Me/internal/tiering"
)

// Runner orchestrates repeated-probe experiments against real engines.
// A Runner is safe for concurrent use; every Run builds its own engine.
type Runner struct {
	config probe.Config
}

// NewRunner creates a runner whose engines share config's logger, decision
// log and metrics. config.OnReselect, if set, is still called.
func NewRunner(config probe.Config) *Runner {
	return &Runner{config: config}
}

// Run executes the scenario and returns the collected results.
// It stops early with ctx.Err() if ctx is cancelled between probes.
func (r *Runner) Run(ctx context.Context, scenario Scenario) (Result, error) {
	if err := scenario.Validate(); err != nil {
		return Result{}, err
	}

	// The engine reports the linked index through OnReselect only.
	linked := -1
	cfg := r.config
	outer := r.config.OnReselect
	cfg.OnReselect = func(i int) {
		linked = i
		if outer != nil {
			outer(i)
		}
	}
	engine := probe.NewEngine(random.NewSource(scenario.Seed), cfg)

	p := scenario.Params
	reps := scenario.repetitions()
	runs := make([]RunResult, 0, reps)

	for i := 0; i < reps; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if i == 0 || !scenario.KeepLinked {
			if err := engine.ReselectLinked(p.Candidates); err != nil {
				return Result{}, fmt.Errorf("scenario %q run %d: %w", scenario.Name, i, err)
			}
		}

		report, err := engine.RunProbe(p.Trials, p.Candidates, p.Noise)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q run %d: %w", scenario.Name, i, err)
		}

		rank := ranking.Position(report.Results, linked)
		runs = append(runs, RunResult{
			Index:             i,
			RunID:             report.RunID,
			Linked:            linked,
			LinkedCorrelation: report.Results[rank].Correlation,
			LinkedRank:        rank,
			Top:               report.Top,
			Report:            report,
		})
	}

	return summarize(scenario, runs), nil
}

func summarize(scenario Scenario, runs []RunResult) Result {
	res := Result{
		Scenario: scenario,
		Runs:     runs,
		Expected: tiering.ExpectedCorrelation(scenario.Params.Noise),
	}
	if len(runs) == 0 {
		return res
	}

	n := float64(len(runs))
	var sum, topAbs float64
	hits := 0
	for _, run := range runs {
		sum += run.LinkedCorrelation
		topAbs += math.Abs(run.Top.Correlation)
		if run.Hit() {
			hits++
		}
	}
	res.MeanLinked = sum / n
	res.MeanTopAbs = topAbs / n
	res.DetectionRate = float64(hits) / n

	if len(runs) > 1 {
		var ss float64
		for _, run := range runs {
			d := run.LinkedCorrelation - res.MeanLinked
			ss += d * d
		}
		res.StdDevLinked = math.Sqrt(ss / (n - 1))
	}
	return res
}

// Tiers counts how often each tier was assigned to the linked candidate.
func (r Result) Tiers() map[models.Tier]int {
	counts := make(map[models.Tier]int)
	for _, run := range r.Runs {
		counts[run.Report.Results[run.LinkedRank].Tier]++
	}
	return counts
}
