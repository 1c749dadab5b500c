// Package session drives a probe engine on behalf of an interactive user.
// It owns the displayed parameters and status text, decides when the hidden
// linked candidate is re-rolled, and interprets line-oriented commands.
//
// All public methods are safe for concurrent use.
package session

import (
	"fmt"
	"sync"

	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/probe"
	"github.com/jarch13/Entangle.Me/internal/tiering"
)

// Config holds session configuration.
type Config struct {
	// Defaults are the parameters applied by Init.
	Defaults models.Params

	// OnStatus, when set, is called with every status change, including the
	// transient "probing" status shown while a run is in flight.
	OnStatus func(status string)
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: models.Params{
			Trials:     constants.DefaultTrials,
			Candidates: constants.DefaultCandidates,
			Noise:      constants.DefaultNoise,
		},
	}
}

// State is a point-in-time view of a session.
type State struct {
	Params      models.Params      `json:"params"`
	Decoherence models.Decoherence `json:"decoherence"`
	Status      string             `json:"status"`
	Runs        int                `json:"runs"`
	Rerolls     int                `json:"rerolls"`
}

// Controller mediates between a user and a probe engine.
type Controller struct {
	mu      sync.RWMutex
	engine  *probe.Engine
	config  Config
	params  models.Params
	status  string
	last    *models.Report
	runs    int
	rerolls int
}

// NewController creates a controller for engine. Call Init before use.
func NewController(engine *probe.Engine, config Config) *Controller {
	return &Controller{
		engine: engine,
		config: config,
		params: config.Defaults,
	}
}

// Init applies the default parameters and re-rolls the linked candidate.
func (c *Controller) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.engine.Configure(c.config.Defaults); err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	c.params = c.config.Defaults
	return c.rerollLocked()
}

// SetTrials changes the sequence length. The linked candidate is kept.
func (c *Controller) SetTrials(trials int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.params
	next.Trials = trials
	if err := c.engine.Configure(next); err != nil {
		return fmt.Errorf("set trials: %w", err)
	}
	c.params = next
	return nil
}

// SetCandidates changes the pool size and re-rolls the linked candidate.
func (c *Controller) SetCandidates(candidates int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.params
	next.Candidates = candidates
	if err := c.engine.Configure(next); err != nil {
		return fmt.Errorf("set candidates: %w", err)
	}
	c.params = next
	return c.rerollLocked()
}

// SetNoise changes the flip probability and returns its decoherence level.
// The linked candidate is kept.
func (c *Controller) SetNoise(noise float64) (models.Decoherence, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.params
	next.Noise = noise
	if err := c.engine.Configure(next); err != nil {
		return 0, fmt.Errorf("set noise: %w", err)
	}
	c.params = next
	return tiering.ClassifyNoise(noise), nil
}

// Reroll draws a new hidden linked candidate for the current pool size.
func (c *Controller) Reroll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rerollLocked()
}

func (c *Controller) rerollLocked() error {
	if err := c.engine.ReselectLinked(c.params.Candidates); err != nil {
		return fmt.Errorf("reroll: %w", err)
	}
	c.rerolls++
	c.setStatusLocked(constants.StatusReady)
	return nil
}

// Run probes with the current parameters. On failure the previous status
// and last report are kept.
func (c *Controller) Run() (*models.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.status
	c.setStatusLocked(constants.StatusProbing)

	report, err := c.engine.RunProbe(c.params.Trials, c.params.Candidates, c.params.Noise)
	if err != nil {
		c.setStatusLocked(prev)
		return nil, fmt.Errorf("run probe: %w", err)
	}

	c.last = report
	c.runs++
	c.setStatusLocked(report.Status)
	return report, nil
}

func (c *Controller) setStatusLocked(status string) {
	c.status = status
	if c.config.OnStatus != nil {
		c.config.OnStatus(status)
	}
}

// Status returns the current status text.
func (c *Controller) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// Params returns the parameters the next run will use.
func (c *Controller) Params() models.Params {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.params
}

// Last returns the most recent report, or nil if nothing has run yet.
func (c *Controller) Last() *models.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.last
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State{
		Params:      c.params,
		Decoherence: tiering.ClassifyNoise(c.params.Noise),
		Status:      c.status,
		Runs:        c.runs,
		Rerolls:     c.rerolls,
	}
}
