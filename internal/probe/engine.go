package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/logging"
	"github.com/jarch13/Entangle.Me/internal/metrics"
	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/random"
	"github.com/jarch13/Entangle.Me/internal/ranking"
	"github.com/jarch13/Entangle.Me/internal/sequence"
	"github.com/jarch13/Entangle.Me/internal/similarity"
	"github.com/jarch13/Entangle.Me/internal/tiering"
)

// ErrNotConfigured is returned by Run when Configure has never succeeded.
var ErrNotConfigured = errors.New("resonance: engine not configured")

// Config holds the engine's collaborators. Every field is optional.
type Config struct {
	// Logger receives operational logs. Defaults to a discarding logger.
	Logger *slog.Logger

	// Decisions receives JSONL probe traces, including the linked index.
	Decisions *logging.DecisionLogger

	// Metrics records probe counters and histograms.
	Metrics *metrics.Recorder

	// OnReselect, when non-nil, is called with the new linked index after
	// every successful ReselectLinked. It is a debugging channel for the
	// collaborator and must not feed the index back into rendering.
	OnReselect func(linked int)

	// NewRunID generates Report.RunID. Defaults to uuid.NewString.
	NewRunID func() string
}

// DefaultConfig returns a Config with a discarding logger and UUID run IDs.
func DefaultConfig() Config {
	return Config{
		Logger:   logging.Discard(),
		NewRunID: uuid.NewString,
	}
}

// Engine orchestrates probes and owns the hidden linked-candidate index.
type Engine struct {
	mu  sync.Mutex
	src random.Source
	gen *sequence.Generator
	cfg Config

	params     models.Params
	configured bool

	// linked is meaningful only when pool > 0; pool is the candidate count
	// the index was drawn for.
	linked int
	pool   int
}

// NewEngine creates an engine drawing all randomness from src.
// No linked candidate exists until ReselectLinked is called.
func NewEngine(src random.Source, cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.NewRunID == nil {
		cfg.NewRunID = uuid.NewString
	}
	return &Engine{
		src: src,
		gen: sequence.NewGenerator(src),
		cfg: cfg,
	}
}

// ValidateParams checks T, N and p against their domains and the probe size limit.
func ValidateParams(p models.Params) error {
	if err := sequence.ValidateTrials(p.Trials); err != nil {
		return err
	}
	if err := validateCandidates(p.Candidates); err != nil {
		return err
	}
	if err := sequence.ValidateNoise(p.Noise); err != nil {
		return err
	}
	if cells := p.Trials * p.Candidates; cells > constants.MaxProbeCells {
		return fmt.Errorf("probe of %d trials x %d candidates exceeds %d cells: %w",
			p.Trials, p.Candidates, constants.MaxProbeCells, models.ErrInvalidParameter)
	}
	return nil
}

func validateCandidates(n int) error {
	if n < 1 || n > constants.MaxCandidates {
		return fmt.Errorf("candidates must be in [1, %d], got %d: %w", constants.MaxCandidates, n, models.ErrInvalidParameter)
	}
	return nil
}

// Configure validates and stores the parameters used by Run.
// It neither produces a report nor re-selects the linked candidate.
func (e *Engine) Configure(p models.Params) error {
	if err := ValidateParams(p); err != nil {
		e.cfg.Metrics.ObserveRejected("configure")
		return fmt.Errorf("configure: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = p
	e.configured = true
	return nil
}

// Params returns the configured parameters and whether Configure has succeeded.
func (e *Engine) Params() (models.Params, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params, e.configured
}

// ReselectLinked draws a new linked candidate uniformly from [0, n).
// Call it whenever the pool size changes, or to re-roll on demand.
func (e *Engine) ReselectLinked(n int) error {
	if err := validateCandidates(n); err != nil {
		e.cfg.Metrics.ObserveRejected("reselect")
		return fmt.Errorf("reselect linked: %w", err)
	}

	e.mu.Lock()
	e.linked = random.Index(e.src, n)
	e.pool = n
	linked := e.linked
	e.mu.Unlock()

	e.cfg.Metrics.ObserveReselect()
	e.cfg.Logger.Debug("reselected linked candidate", "candidates", n)
	e.cfg.Decisions.Log(map[string]any{
		"event":      "reselect",
		"candidates": n,
		"linked":     linked,
	})
	if e.cfg.OnReselect != nil {
		e.cfg.OnReselect(linked)
	}
	return nil
}

// Run probes with the configured parameters.
func (e *Engine) Run() (*models.Report, error) {
	p, ok := e.Params()
	if !ok {
		e.cfg.Metrics.ObserveRejected("run")
		return nil, ErrNotConfigured
	}
	return e.RunProbe(p.Trials, p.Candidates, p.Noise)
}

// RunProbe generates a reference and N candidates, correlates each candidate
// with the reference, ranks them by |c| and classifies the outcome.
//
// The linked candidate selected by the last ReselectLinked must lie in [0, N).
// On any error no report is produced and engine state is unchanged.
func (e *Engine) RunProbe(trials, candidates int, noise float64) (*models.Report, error) {
	params := models.Params{Trials: trials, Candidates: candidates, Noise: noise}
	if err := ValidateParams(params); err != nil {
		e.cfg.Metrics.ObserveRejected("run")
		return nil, fmt.Errorf("run probe: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pool == 0 || e.linked >= candidates {
		e.cfg.Metrics.ObserveRejected("run")
		return nil, fmt.Errorf("run probe: no linked candidate selected for a pool of %d: %w",
			candidates, models.ErrInvalidParameter)
	}

	start := time.Now()
	runID := e.cfg.NewRunID()

	results, err := e.correlate(params)
	if err != nil {
		return nil, fmt.Errorf("run probe %s: %w", runID, err)
	}

	ranked := ranking.Rank(results)
	expected := tiering.ExpectedCorrelation(noise)
	band := tiering.Band(expected)

	report := &models.Report{
		RunID:       runID,
		Trials:      trials,
		Candidates:  candidates,
		NoiseLevel:  noise,
		Expected:    expected,
		Decoherence: tiering.ClassifyNoise(noise),
		Results:     ranked,
		Top:         ranked[0],
		Band:        band,
		Status:      tiering.Status(expected),
	}

	e.record(report, results[e.linked], time.Since(start))
	return report, nil
}

// correlate builds every candidate and returns results in candidate order.
// Caller must hold e.mu.
func (e *Engine) correlate(p models.Params) ([]models.CorrelationResult, error) {
	reference, err := e.gen.Reference(p.Trials)
	if err != nil {
		return nil, err
	}

	results := make([]models.CorrelationResult, p.Candidates)
	for i := range results {
		var candidate models.Sequence
		if i == e.linked {
			candidate, err = e.gen.Linked(reference, p.Noise)
		} else {
			candidate, err = e.gen.Baseline(p.Trials)
		}
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}

		c, err := similarity.Correlation(reference, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		results[i] = models.CorrelationResult{
			Candidate:   i,
			Correlation: c,
			Tier:        tiering.ClassifyCorrelation(c),
		}
	}
	return results, nil
}

// record emits logs, decision traces and metrics for a finished probe.
// Caller must hold e.mu.
func (e *Engine) record(report *models.Report, linked models.CorrelationResult, elapsed time.Duration) {
	hit := report.Top.Candidate == e.linked
	topAbs := math.Abs(report.Top.Correlation)

	e.cfg.Metrics.ObserveProbe(report.Band.String(), topAbs, hit, elapsed)

	logger := e.cfg.Logger
	logger.Debug("probe complete",
		"run_id", report.RunID,
		"trials", report.Trials,
		"candidates", report.Candidates,
		"noise", report.NoiseLevel,
		"top", report.Top.Candidate,
		"top_correlation", report.Top.Correlation,
		"band", report.Band,
		"elapsed", elapsed,
	)
	if logger.Enabled(context.Background(), logging.LevelTrace) {
		for rank, r := range report.Results {
			logger.Log(context.Background(), logging.LevelTrace, "candidate correlation",
				"run_id", report.RunID,
				"rank", rank+1,
				"candidate", r.Candidate,
				"correlation", r.Correlation,
				"tier", r.Tier,
			)
		}
	}

	e.cfg.Decisions.Log(map[string]any{
		"event":              "probe",
		"run_id":             report.RunID,
		"trials":             report.Trials,
		"candidates":         report.Candidates,
		"noise":              report.NoiseLevel,
		"linked":             e.linked,
		"linked_correlation": linked.Correlation,
		"top":                report.Top.Candidate,
		"top_correlation":    report.Top.Correlation,
		"top_is_linked":      hit,
	})
}
