package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signalContext(context.Background())
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resonance",
		Short: "Resonance - correlation probe for hidden linked sequences",
		Long: `resonance generates a random ±1 reference sequence and a pool of candidate
sequences, one of which is secretly a noisy copy of the reference. It
correlates every candidate with the reference and ranks them, showing how
noise (decoherence) masks the linked candidate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for scripting)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (debug enables decisions.jsonl)")
	rootCmd.PersistentFlags().String("color", "", "Color output: auto, always or never")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSessionCmd(),
		newSimulateCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// signalContext returns a context cancelled on SIGINT (and SIGTERM where supported).
func signalContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signalStop(sigCh)
		cancel()
	}
}
