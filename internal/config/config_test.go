package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jarch13/Entangle.Me/internal/models"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Probe.Trials != 200 {
		t.Errorf("expected Trials 200, got %d", config.Probe.Trials)
	}
	if config.Probe.Candidates != 12 {
		t.Errorf("expected Candidates 12, got %d", config.Probe.Candidates)
	}
	if config.Probe.Noise != 0.15 {
		t.Errorf("expected Noise 0.15, got %f", config.Probe.Noise)
	}
	if config.Probe.Seed != 0 {
		t.Errorf("expected Seed 0, got %d", config.Probe.Seed)
	}

	if config.Simulation.Repetitions != 50 {
		t.Errorf("expected Repetitions 50, got %d", config.Simulation.Repetitions)
	}
	if len(config.Simulation.NoiseLevels) == 0 {
		t.Error("expected default noise levels")
	}

	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if config.Output.Color != "auto" {
		t.Errorf("expected Output.Color 'auto', got '%s'", config.Output.Color)
	}
}

func TestProbeConfig_Params(t *testing.T) {
	p := ProbeConfig{Trials: 10, Candidates: 3, Noise: 0.4}.Params()
	if p.Trials != 10 || p.Candidates != 3 || p.Noise != 0.4 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
probe:
  trials: 500
  candidates: 20
  noise: 0.3
  seed: 42

simulation:
  repetitions: 10
  workers: 2
  noise_levels: [0.1, 0.9]

output:
  color: never
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Probe.Trials != 500 {
		t.Errorf("expected Trials 500, got %d", config.Probe.Trials)
	}
	if config.Probe.Candidates != 20 {
		t.Errorf("expected Candidates 20, got %d", config.Probe.Candidates)
	}
	if config.Probe.Noise != 0.3 {
		t.Errorf("expected Noise 0.3, got %f", config.Probe.Noise)
	}
	if config.Probe.Seed != 42 {
		t.Errorf("expected Seed 42, got %d", config.Probe.Seed)
	}
	if config.Simulation.Workers != 2 {
		t.Errorf("expected Workers 2, got %d", config.Simulation.Workers)
	}
	if len(config.Simulation.NoiseLevels) != 2 || config.Simulation.NoiseLevels[1] != 0.9 {
		t.Errorf("unexpected NoiseLevels %v", config.Simulation.NoiseLevels)
	}
	if config.Output.Color != "never" {
		t.Errorf("expected Color 'never', got '%s'", config.Output.Color)
	}

	// Unset sections keep their defaults.
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level to stay 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile_DecisionsDirHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
logging:
  level: debug
  decisions_dir: ~/probe-logs
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	want := filepath.Join(home, "probe-logs")
	if config.Logging.DecisionsDir != want {
		t.Errorf("expected DecisionsDir %q, got %q", want, config.Logging.DecisionsDir)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
probe:
  trials: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_HomeConfigAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESONANCE_NOISE", "0.6")

	dir := filepath.Join(home, ".resonance")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	content := "probe:\n  trials: 321\n  noise: 0.2\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Probe.Trials != 321 {
		t.Errorf("expected Trials 321 from file, got %d", config.Probe.Trials)
	}
	if config.Probe.Noise != 0.6 {
		t.Errorf("expected env to override Noise to 0.6, got %f", config.Probe.Noise)
	}
	if config.Logging.DecisionsDir != dir {
		t.Errorf("expected DecisionsDir %q, got %q", dir, config.Logging.DecisionsDir)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Probe.Trials != Default().Probe.Trials {
		t.Errorf("expected default Trials, got %d", config.Probe.Trials)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RESONANCE_TRIALS", "1000")
	t.Setenv("RESONANCE_CANDIDATES", "8")
	t.Setenv("RESONANCE_NOISE", "0.45")
	t.Setenv("RESONANCE_SEED", "7")
	t.Setenv("RESONANCE_LOG_LEVEL", "trace")
	t.Setenv("RESONANCE_COLOR", "always")

	config := Default()
	if err := applyEnvOverrides(config); err != nil {
		t.Fatalf("applyEnvOverrides failed: %v", err)
	}

	if config.Probe.Trials != 1000 {
		t.Errorf("expected Trials 1000, got %d", config.Probe.Trials)
	}
	if config.Probe.Candidates != 8 {
		t.Errorf("expected Candidates 8, got %d", config.Probe.Candidates)
	}
	if config.Probe.Noise != 0.45 {
		t.Errorf("expected Noise 0.45, got %f", config.Probe.Noise)
	}
	if config.Probe.Seed != 7 {
		t.Errorf("expected Seed 7, got %d", config.Probe.Seed)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected Logging.Level 'trace', got '%s'", config.Logging.Level)
	}
	if config.Output.Color != "always" {
		t.Errorf("expected Color 'always', got '%s'", config.Output.Color)
	}
}

func TestEnvOverrides_NoColor(t *testing.T) {
	t.Setenv("RESONANCE_COLOR", "always")
	t.Setenv("NO_COLOR", "1")

	config := Default()
	if err := applyEnvOverrides(config); err != nil {
		t.Fatalf("applyEnvOverrides failed: %v", err)
	}
	if config.Output.Color != "never" {
		t.Errorf("expected NO_COLOR to force 'never', got '%s'", config.Output.Color)
	}
}

func TestEnvOverrides_Malformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RESONANCE_TRIALS", "many"},
		{"RESONANCE_CANDIDATES", "1.5"},
		{"RESONANCE_NOISE", "half"},
		{"RESONANCE_SEED", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := applyEnvOverrides(Default())
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_InvalidProbe(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ResonanceConfig)
		key    string
	}{
		{"zero trials", func(c *ResonanceConfig) { c.Probe.Trials = 0 }, "probe.trials"},
		{"too many trials", func(c *ResonanceConfig) { c.Probe.Trials = 100_001 }, "probe.trials"},
		{"zero candidates", func(c *ResonanceConfig) { c.Probe.Candidates = 0 }, "probe.candidates"},
		{"negative noise", func(c *ResonanceConfig) { c.Probe.Noise = -0.1 }, "probe.noise"},
		{"noise above one", func(c *ResonanceConfig) { c.Probe.Noise = 1.01 }, "probe.noise"},
		{"zero repetitions", func(c *ResonanceConfig) { c.Simulation.Repetitions = 0 }, "simulation.repetitions"},
		{"zero workers", func(c *ResonanceConfig) { c.Simulation.Workers = 0 }, "simulation.workers"},
		{"empty sweep", func(c *ResonanceConfig) { c.Simulation.NoiseLevels = nil }, "simulation.noise_levels"},
		{"bad sweep level", func(c *ResonanceConfig) { c.Simulation.NoiseLevels = []float64{0.2, 2} }, "simulation.noise_levels[1]"},
		{"bad color", func(c *ResonanceConfig) { c.Output.Color = "sometimes" }, "output.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, models.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected error to name %q, got %v", tt.key, err)
			}
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	config := Default()
	config.Logging.Level = "verbose"
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for invalid log level")
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := Default()
	config.Probe.Trials = 900
	config.Probe.Seed = 99
	config.Output.Color = "never"

	if err := Save(config, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Probe.Trials != 900 || loaded.Probe.Seed != 99 || loaded.Output.Color != "never" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestYAMLKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ResonanceConfig.Probe.Noise", "probe.noise"},
		{"ResonanceConfig.Simulation.NoiseLevels[2]", "simulation.noise_levels[2]"},
		{"ResonanceConfig.Output.Color", "output.color"},
	}
	for _, tt := range tests {
		if got := yamlKey(tt.in); got != tt.want {
			t.Errorf("yamlKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
