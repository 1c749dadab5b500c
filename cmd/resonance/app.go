package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jarch13/Entangle.Me/internal/config"
	"github.com/jarch13/Entangle.Me/internal/logging"
	"github.com/jarch13/Entangle.Me/internal/metrics"
	"github.com/jarch13/Entangle.Me/internal/probe"
	"github.com/jarch13/Entangle.Me/internal/random"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// app bundles the configuration and collaborators shared by commands.
type app struct {
	cfg       *config.ResonanceConfig
	logger    *slog.Logger
	decisions *logging.DecisionLogger
	metrics   *metrics.Recorder
	color     bool
	jsonOut   bool
}

// newApp loads configuration, applies global flags and builds loggers.
// Callers must call close when done.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("color") {
		cfg.Output.Color, _ = cmd.Flags().GetString("color")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	return &app{
		cfg:       cfg,
		logger:    logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
		decisions: logging.NewDecisionLogger(cfg.Logging.DecisionsDir, cfg.Logging.Level),
		metrics:   metrics.NewRecorder(),
		color:     useColor(cfg.Output.Color, cmd.OutOrStdout()),
		jsonOut:   jsonOut,
	}, nil
}

func (a *app) close() {
	a.decisions.Close()
}

// engineConfig wires the app's collaborators into a probe engine config.
func (a *app) engineConfig() probe.Config {
	cfg := probe.DefaultConfig()
	cfg.Logger = a.logger
	cfg.Decisions = a.decisions
	cfg.Metrics = a.metrics
	return cfg
}

// newEngine creates an engine seeded from the config.
func (a *app) newEngine(seed uint64, onReselect func(int)) *probe.Engine {
	cfg := a.engineConfig()
	cfg.OnReselect = onReselect
	return probe.NewEngine(random.NewSource(seed), cfg)
}

// useColor resolves the color mode for w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
