// Package config provides unified configuration loading for resonance.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
	"gopkg.in/yaml.v3"
)

// configValidate is shared; validator caches struct metadata per instance.
var configValidate = validator.New(validator.WithRequiredStructEnabled())

// ResonanceConfig contains all resonance configuration settings.
type ResonanceConfig struct {
	// Probe holds the default probe parameters.
	Probe ProbeConfig `json:"probe" yaml:"probe"`

	// Simulation configures statistical sweeps.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Output controls terminal rendering.
	Output OutputConfig `json:"output" yaml:"output"`
}

// ProbeConfig holds the parameters a fresh session starts with.
type ProbeConfig struct {
	// Trials is the sequence length T.
	Trials int `json:"trials" yaml:"trials" validate:"gte=1,lte=100000"`

	// Candidates is the pool size N.
	Candidates int `json:"candidates" yaml:"candidates" validate:"gte=1,lte=1000"`

	// Noise is the flip probability p of the linked candidate. Range: 0.0 to 1.0
	Noise float64 `json:"noise" yaml:"noise" validate:"gte=0,lte=1"`

	// Seed seeds the random source. 0 means a fresh random seed every run.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// Params converts the probe settings into engine parameters.
func (p ProbeConfig) Params() models.Params {
	return models.Params{Trials: p.Trials, Candidates: p.Candidates, Noise: p.Noise}
}

// SimulationConfig configures repeated-probe sweeps.
type SimulationConfig struct {
	// Repetitions is the number of probes per noise level.
	Repetitions int `json:"repetitions" yaml:"repetitions" validate:"gte=1,lte=100000"`

	// Workers bounds how many noise levels run in parallel.
	Workers int `json:"workers" yaml:"workers" validate:"gte=1,lte=64"`

	// NoiseLevels are the p values swept by `resonance simulate`.
	NoiseLevels []float64 `json:"noise_levels" yaml:"noise_levels" validate:"min=1,dive,gte=0,lte=1"`
}

// LoggingConfig configures resonance's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables decision logging to <dir>/decisions.jsonl, which
	// records the hidden linked candidate.
	Level string `json:"level" yaml:"level" validate:"omitempty,oneof=info debug trace"`

	// DecisionsDir is where decisions.jsonl is written. Defaults to ~/.resonance.
	DecisionsDir string `json:"decisions_dir,omitempty" yaml:"decisions_dir,omitempty"`
}

// OutputConfig configures terminal output.
type OutputConfig struct {
	// Color is "auto" (color on a terminal), "always" or "never".
	Color string `json:"color" yaml:"color" validate:"oneof=auto always never"`
}

// Default returns a ResonanceConfig with sensible defaults.
func Default() *ResonanceConfig {
	return &ResonanceConfig{
		Probe: ProbeConfig{
			Trials:     constants.DefaultTrials,
			Candidates: constants.DefaultCandidates,
			Noise:      constants.DefaultNoise,
		},
		Simulation: SimulationConfig{
			Repetitions: constants.DefaultRepetitions,
			Workers:     constants.DefaultSweepWorkers,
			NoiseLevels: []float64{0, 0.25, 0.5, 0.75, 1.0},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Dir returns the resonance home directory (~/.resonance).
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".resonance"), nil
}

// Path returns the default config file path (~/.resonance/config.yaml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.resonance/config.yaml -> environment variables
func Load() (*ResonanceConfig, error) {
	config := Default()

	if configPath, err := Path(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if config.Logging.DecisionsDir == "" {
		if dir, err := Dir(); err == nil {
			config.Logging.DecisionsDir = dir
		}
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*ResonanceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Logging.DecisionsDir = expandHome(config.Logging.DecisionsDir)
	return config, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(config *ResonanceConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
// Probe parameter violations wrap models.ErrInvalidParameter.
func (c *ResonanceConfig) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), models.ErrInvalidParameter)
}

// describe renders a field error using the yaml key path, e.g. "probe.noise".
func describe(fe validator.FieldError) string {
	key := yamlKey(fe.StructNamespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", key, fe.Param(), fe.Value())
	case "gte", "min":
		return fmt.Sprintf("%s must be >= %s, got %v", key, fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("%s must be <= %s, got %v", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", key, fe.Tag())
	}
}

var yamlKeys = map[string]string{
	"Probe":        "probe",
	"Simulation":   "simulation",
	"Logging":      "logging",
	"Output":       "output",
	"Trials":       "trials",
	"Candidates":   "candidates",
	"Noise":        "noise",
	"Seed":         "seed",
	"Repetitions":  "repetitions",
	"Workers":      "workers",
	"NoiseLevels":  "noise_levels",
	"Level":        "level",
	"DecisionsDir": "decisions_dir",
	"Color":        "color",
}

// yamlKey converts "ResonanceConfig.Probe.Noise" to "probe.noise".
func yamlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		name, index, _ := strings.Cut(p, "[")
		if k, ok := yamlKeys[name]; ok {
			name = k
		}
		if index != "" {
			name += "[" + index
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}

// applyEnvOverrides applies RESONANCE_* environment variable overrides.
func applyEnvOverrides(config *ResonanceConfig) error {
	if v := os.Getenv("RESONANCE_TRIALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RESONANCE_TRIALS: %w", err)
		}
		config.Probe.Trials = n
	}

	if v := os.Getenv("RESONANCE_CANDIDATES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RESONANCE_CANDIDATES: %w", err)
		}
		config.Probe.Candidates = n
	}

	if v := os.Getenv("RESONANCE_NOISE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RESONANCE_NOISE: %w", err)
		}
		config.Probe.Noise = f
	}

	if v := os.Getenv("RESONANCE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RESONANCE_SEED: %w", err)
		}
		config.Probe.Seed = n
	}

	if v := os.Getenv("RESONANCE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("RESONANCE_DECISIONS_DIR"); v != "" {
		config.Logging.DecisionsDir = expandHome(v)
	}

	if v := os.Getenv("RESONANCE_COLOR"); v != "" {
		config.Output.Color = v
	}

	// NO_COLOR wins over everything else.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		config.Output.Color = "never"
	}

	return nil
}

// expandHome expands a leading "~/" to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
