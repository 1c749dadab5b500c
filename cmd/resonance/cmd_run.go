package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/ranking"
	"github.com/jarch13/Entangle.Me/internal/visualization"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a correlation probe",
		Long: `Select a hidden linked candidate, generate the reference and candidate
sequences, and rank every candidate by the absolute value of its correlation
with the reference.

Unset flags fall back to ~/.resonance/config.yaml and RESONANCE_* variables.

Examples:
  resonance run                                 # Probe with configured defaults
  resonance run --trials 500 --noise 0.35       # Noisier, longer sequences
  resonance run --runs 5                        # Five probes, re-rolling each time
  resonance run --seed 42 --reveal              # Reproducible, print the linked candidate
  resonance run --format html -o probe.html     # Write an HTML report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			params, seed := probeFlags(cmd, a)
			runs, _ := cmd.Flags().GetInt("runs")
			keep, _ := cmd.Flags().GetBool("keep-linked")
			reveal, _ := cmd.Flags().GetBool("reveal")
			formatName, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			noOpen, _ := cmd.Flags().GetBool("no-open")

			format, err := visualization.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if a.jsonOut {
				format = visualization.FormatJSON
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d: %w", runs, models.ErrInvalidParameter)
			}

			linked := -1
			engine := a.newEngine(seed, func(i int) { linked = i })
			if err := engine.Configure(params); err != nil {
				return err
			}

			var last *models.Report
			for i := 0; i < runs; i++ {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if i == 0 || !keep {
					if err := engine.ReselectLinked(params.Candidates); err != nil {
						return err
					}
				}
				report, err := engine.Run()
				if err != nil {
					return err
				}
				last = report

				if i > 0 && format == visualization.FormatText {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				switch format {
				case visualization.FormatText:
					err = visualization.RenderText(cmd.OutOrStdout(), report, visualization.Options{Color: a.color})
				case visualization.FormatJSON:
					err = visualization.RenderJSON(cmd.OutOrStdout(), report)
				}
				if err != nil {
					return err
				}
				if reveal {
					fmt.Fprintf(cmd.ErrOrStderr(), "hidden linked candidate: %s (rank %d)\n",
						visualization.CandidateName(linked), ranking.Position(report.Results, linked)+1)
				}
			}

			if format == visualization.FormatHTML {
				return writeReportHTML(cmd, last, output, noOpen)
			}
			return nil
		},
	}

	addProbeFlags(cmd)
	cmd.Flags().Int("runs", 1, "Number of probes to run")
	cmd.Flags().Bool("keep-linked", false, "Keep the same linked candidate across --runs")
	cmd.Flags().Bool("reveal", false, "Print the hidden linked candidate to stderr (debugging)")
	cmd.Flags().String("format", "text", "Output format: text, json or html")
	cmd.Flags().StringP("output", "o", "", "Output file path (html format only)")
	cmd.Flags().Bool("no-open", false, "Don't open browser after generating HTML")

	return cmd
}

// addProbeFlags registers the probe parameter flags shared by commands.
func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("trials", 0, "Sequence length T (default from config)")
	cmd.Flags().Int("candidates", 0, "Candidate pool size N (default from config)")
	cmd.Flags().Float64("noise", 0, "Flip probability p in [0, 1] (default from config)")
	cmd.Flags().Uint64("seed", 0, "Random seed; 0 seeds from entropy (default from config)")
}

// probeFlags merges explicitly set probe flags over the configured defaults.
func probeFlags(cmd *cobra.Command, a *app) (models.Params, uint64) {
	params := a.cfg.Probe.Params()
	seed := a.cfg.Probe.Seed
	if cmd.Flags().Changed("trials") {
		params.Trials, _ = cmd.Flags().GetInt("trials")
	}
	if cmd.Flags().Changed("candidates") {
		params.Candidates, _ = cmd.Flags().GetInt("candidates")
	}
	if cmd.Flags().Changed("noise") {
		params.Noise, _ = cmd.Flags().GetFloat64("noise")
	}
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}
	return params, seed
}

// writeReportHTML renders the report to a self-contained HTML file.
func writeReportHTML(cmd *cobra.Command, report *models.Report, output string, noOpen bool) error {
	htmlBytes, err := visualization.RenderHTML(report)
	if err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}

	outPath := output
	if outPath == "" {
		outPath = filepath.Join(os.TempDir(), "resonance-"+report.RunID+".html")
	}

	if err := os.WriteFile(outPath, htmlBytes, 0644); err != nil {
		return fmt.Errorf("write HTML file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)

	if !noOpen {
		if err := visualization.OpenReport(outPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, outPath)
		}
	}
	return nil
}

