package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jarch13/Entangle.Me/internal/simulation"
	"github.com/jarch13/Entangle.Me/internal/tiering"
	"github.com/jarch13/Entangle.Me/internal/visualization"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Sweep noise levels and measure detection statistics",
		Long: `Run repeated probes at several noise levels and compare the measured
linked-candidate correlation with the theoretical 1-2p.

Examples:
  resonance simulate                                    # Configured sweep
  resonance simulate --noise-levels 0,0.1,0.2 -r 200    # Custom sweep
  resonance simulate --seed 7 --metrics                 # Reproducible, with metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			params, seed := probeFlags(cmd, a)
			reps := a.cfg.Simulation.Repetitions
			if cmd.Flags().Changed("repetitions") {
				reps, _ = cmd.Flags().GetInt("repetitions")
			}
			workers := a.cfg.Simulation.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}
			noises := a.cfg.Simulation.NoiseLevels
			if cmd.Flags().Changed("noise-levels") {
				noises, _ = cmd.Flags().GetFloat64Slice("noise-levels")
			}
			keep, _ := cmd.Flags().GetBool("keep-linked")
			showMetrics, _ := cmd.Flags().GetBool("metrics")

			base := simulation.Scenario{
				Name:        "sweep",
				Params:      params,
				Repetitions: reps,
				Seed:        seed,
				KeepLinked:  keep,
			}

			a.logger.Debug("starting sweep", "levels", len(noises), "repetitions", reps, "workers", workers)
			runner := simulation.NewRunner(a.engineConfig())
			results, err := runner.Sweep(cmd.Context(), base, noises, workers)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return writeSweepJSON(cmd.OutOrStdout(), results, a, showMetrics)
			}
			writeSweepTable(cmd.OutOrStdout(), results)
			if showMetrics {
				return writeMetrics(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	addProbeFlags(cmd)
	cmd.Flags().IntP("repetitions", "r", 0, "Probes per noise level (default from config)")
	cmd.Flags().Int("workers", 0, "Noise levels simulated in parallel (default from config)")
	cmd.Flags().Float64Slice("noise-levels", nil, "Comma-separated noise levels to sweep (default from config)")
	cmd.Flags().Bool("keep-linked", false, "Keep one linked candidate per noise level")
	cmd.Flags().Bool("metrics", false, "Print probe metrics after the sweep")

	return cmd
}

type sweepRow struct {
	Noise         float64 `json:"noise"`
	Expected      float64 `json:"expected"`
	MeanLinked    float64 `json:"mean_linked"`
	StdDevLinked  float64 `json:"stddev_linked"`
	MeanTopAbs    float64 `json:"mean_top_abs"`
	DetectionRate float64 `json:"detection_rate"`
	Decoherence   string  `json:"decoherence"`
	Runs          int     `json:"runs"`
}

func sweepRows(results []simulation.Result) []sweepRow {
	rows := make([]sweepRow, 0, len(results))
	for _, r := range results {
		p := r.Scenario.Params.Noise
		rows = append(rows, sweepRow{
			Noise:         p,
			Expected:      r.Expected,
			MeanLinked:    r.MeanLinked,
			StdDevLinked:  r.StdDevLinked,
			MeanTopAbs:    r.MeanTopAbs,
			DetectionRate: r.DetectionRate,
			Decoherence:   tiering.ClassifyNoise(p).Label(),
			Runs:          len(r.Runs),
		})
	}
	return rows
}

func writeSweepTable(w io.Writer, results []simulation.Result) {
	fmt.Fprintf(w, "%-6s %9s %9s %8s %8s %8s  %s\n", "Noise", "Expected", "Mean", "StdDev", "Top|c|", "Detect", "Decoherence")
	for _, row := range sweepRows(results) {
		fmt.Fprintf(w, "%-6s %9s %9s %8s %8s %7s%%  %s\n",
			visualization.FormatFixed(row.Noise, 2),
			visualization.FormatFixed(row.Expected, 3),
			visualization.FormatFixed(row.MeanLinked, 3),
			visualization.FormatFixed(row.StdDevLinked, 3),
			visualization.FormatFixed(row.MeanTopAbs, 3),
			visualization.FormatFixed(row.DetectionRate*100, 1),
			row.Decoherence)
	}
}

func writeSweepJSON(w io.Writer, results []simulation.Result, a *app, withMetrics bool) error {
	out := map[string]any{
		"levels": sweepRows(results),
	}
	if withMetrics {
		samples, err := a.metrics.Snapshot()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		out["metrics"] = samples
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMetrics(w io.Writer, a *app) error {
	samples, err := a.metrics.Snapshot()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metrics:")
	for _, s := range samples {
		name := s.Name
		if s.Labels != "" {
			name += "{" + s.Labels + "}"
		}
		fmt.Fprintf(w, "  %-60s %s\n", name, strconv.FormatFloat(s.Value, 'g', 6, 64))
	}
	return nil
}
