package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jarch13/Entangle.Me/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage resonance configuration",
		Long: `View and modify resonance configuration settings.

Configuration is stored in ~/.resonance/config.yaml. RESONANCE_* environment
variables override the file.

Examples:
  resonance config list                          # Show all settings
  resonance config get probe.noise               # Get a specific setting
  resonance config set probe.trials 500          # Set a setting
  resonance config set simulation.noise_levels 0,0.2,0.4`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

// configKeys lists the settable keys in display order.
var configKeys = []string{
	"probe.trials",
	"probe.candidates",
	"probe.noise",
	"probe.seed",
	"simulation.repetitions",
	"simulation.workers",
	"simulation.noise_levels",
	"logging.level",
	"logging.decisions_dir",
	"output.color",
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			fmt.Fprintln(out, "Configuration (~/.resonance/config.yaml):")
			section := ""
			for _, key := range configKeys {
				prefix, _, _ := strings.Cut(key, ".")
				if prefix != section {
					section = prefix
					fmt.Fprintln(out)
				}
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "  %-24s %s\n", key+":", valueOrDefault(value, "(not set)"))
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key, value := args[0], args[1]

			path, err := config.Path()
			if err != nil {
				return err
			}

			// Start from the file alone so environment overrides are not persisted.
			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				cfg, err = config.LoadFromFile(path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.ResonanceConfig, key string) (string, bool) {
	switch key {
	case "probe.trials":
		return strconv.Itoa(cfg.Probe.Trials), true
	case "probe.candidates":
		return strconv.Itoa(cfg.Probe.Candidates), true
	case "probe.noise":
		return strconv.FormatFloat(cfg.Probe.Noise, 'f', -1, 64), true
	case "probe.seed":
		return strconv.FormatUint(cfg.Probe.Seed, 10), true
	case "simulation.repetitions":
		return strconv.Itoa(cfg.Simulation.Repetitions), true
	case "simulation.workers":
		return strconv.Itoa(cfg.Simulation.Workers), true
	case "simulation.noise_levels":
		levels := make([]string, len(cfg.Simulation.NoiseLevels))
		for i, p := range cfg.Simulation.NoiseLevels {
			levels[i] = strconv.FormatFloat(p, 'f', -1, 64)
		}
		return strings.Join(levels, ","), true
	case "logging.level":
		return cfg.Logging.Level, true
	case "logging.decisions_dir":
		return cfg.Logging.DecisionsDir, true
	case "output.color":
		return cfg.Output.Color, true
	default:
		return "", false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
// Range checks are left to ResonanceConfig.Validate.
func setConfigValue(cfg *config.ResonanceConfig, key, value string) error {
	switch key {
	case "probe.trials":
		return setInt(&cfg.Probe.Trials, key, value)
	case "probe.candidates":
		return setInt(&cfg.Probe.Candidates, key, value)
	case "probe.noise":
		return setFloat(&cfg.Probe.Noise, key, value)
	case "probe.seed":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %s (must be a non-negative integer)", key, value)
		}
		cfg.Probe.Seed = n
	case "simulation.repetitions":
		return setInt(&cfg.Simulation.Repetitions, key, value)
	case "simulation.workers":
		return setInt(&cfg.Simulation.Workers, key, value)
	case "simulation.noise_levels":
		parts := strings.Split(value, ",")
		levels := make([]float64, 0, len(parts))
		for _, part := range parts {
			var p float64
			if err := setFloat(&p, key, strings.TrimSpace(part)); err != nil {
				return err
			}
			levels = append(levels, p)
		}
		cfg.Simulation.NoiseLevels = levels
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.decisions_dir":
		cfg.Logging.DecisionsDir = value
	case "output.color":
		cfg.Output.Color = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %s (must be an integer)", key, value)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %s (must be a number)", key, value)
	}
	*dst = f
	return nil
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
