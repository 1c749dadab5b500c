package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/session"
	"github.com/jarch13/Entangle.Me/internal/visualization"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive probe session",
		Long: `Read commands from stdin and probe interactively.

Changing the candidate count or running "reroll" selects a new hidden linked
candidate; changing trials or noise keeps it.

Commands:
  trials <T>       set the sequence length
  candidates <N>   set the pool size (re-rolls)
  noise <p>        set the flip probability
  reroll           re-roll the hidden linked candidate
  run              probe and show the ranking
  show             show the current parameters and status
  help             list commands
  quit             leave the session

Examples:
  resonance session
  printf 'noise 0.4\nrun\n' | resonance session --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			params, seed := probeFlags(cmd, a)
			engine := a.newEngine(seed, nil)

			cfg := session.DefaultConfig()
			cfg.Defaults = params
			cfg.OnStatus = func(status string) {
				a.logger.Debug("session status", "status", status)
			}
			ctrl := session.NewController(engine, cfg)
			if err := ctrl.Init(); err != nil {
				return err
			}

			render := func(w io.Writer, r *models.Report) error {
				return visualization.RenderText(w, r, visualization.Options{Color: a.color})
			}
			if a.jsonOut {
				render = visualization.RenderJSON
			}

			out := cmd.OutOrStdout()
			in := cmd.InOrStdin()
			sh := session.NewShell(ctrl, out, render)
			if interactive(in) && !a.jsonOut {
				sh.Prompt = "resonance> "
				fmt.Fprintf(out, "%s\nType \"help\" for commands.\n", ctrl.Status())
			}

			return sh.Serve(cmd.Context(), in)
		},
	}

	addProbeFlags(cmd)
	return cmd
}

// interactive reports whether r is a terminal.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
