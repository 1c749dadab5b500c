package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jarch13/Entangle.Me/internal/models"
)

// ErrQuit is returned by Exec when the user asks to leave the session.
var ErrQuit = errors.New("resonance: quit")

// ErrUnknownCommand is returned by Exec for unrecognized input.
var ErrUnknownCommand = errors.New("resonance: unknown command")

// Renderer writes a report for the user.
type Renderer func(w io.Writer, r *models.Report) error

// Command describes one shell command.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists the shell commands in help order.
var Commands = []Command{
	{Name: "trials", Usage: "trials <T>", Help: "set the sequence length (keeps the linked candidate)"},
	{Name: "candidates", Usage: "candidates <N>", Help: "set the pool size and re-roll the linked candidate"},
	{Name: "noise", Usage: "noise <p>", Help: "set the flip probability in [0, 1]"},
	{Name: "reroll", Usage: "reroll", Help: "re-roll the hidden linked candidate"},
	{Name: "run", Usage: "run", Help: "probe correlations and show the ranking"},
	{Name: "show", Usage: "show", Help: "show parameters, status and the last top match"},
	{Name: "help", Usage: "help", Help: "list commands"},
	{Name: "quit", Usage: "quit", Help: "leave the session"},
}

// Shell interprets line-oriented commands against a Controller.
type Shell struct {
	ctrl   *Controller
	out    io.Writer
	render Renderer

	// Prompt is written before each line is read by Serve. Empty disables it.
	Prompt string
}

// NewShell creates a shell writing to out. render is used by "run".
func NewShell(ctrl *Controller, out io.Writer, render Renderer) *Shell {
	return &Shell{ctrl: ctrl, out: out, render: render}
}

// Exec runs a single command line. Blank lines are ignored.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "trials", "t":
		n, err := intArg(name, args)
		if err != nil {
			return err
		}
		if err := s.ctrl.SetTrials(n); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "trials = %d\n", n)

	case "candidates", "c":
		n, err := intArg(name, args)
		if err != nil {
			return err
		}
		if err := s.ctrl.SetCandidates(n); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "candidates = %d\n%s\n", n, s.ctrl.Status())

	case "noise", "p":
		p, err := floatArg(name, args)
		if err != nil {
			return err
		}
		d, err := s.ctrl.SetNoise(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "noise = %s (decoherence: %s)\n", strconv.FormatFloat(p, 'f', 2, 64), d.Label())

	case "reroll":
		if err := s.ctrl.Reroll(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.ctrl.Status())

	case "run", "r":
		report, err := s.ctrl.Run()
		if err != nil {
			return err
		}
		if s.render != nil {
			return s.render(s.out, report)
		}
		fmt.Fprintln(s.out, report.Status)

	case "show":
		s.show()

	case "help", "?":
		for _, c := range Commands {
			fmt.Fprintf(s.out, "  %-16s %s\n", c.Usage, c.Help)
		}

	case "quit", "exit", "q":
		return ErrQuit

	default:
		return fmt.Errorf("%q (try \"help\"): %w", name, ErrUnknownCommand)
	}
	return nil
}

func (s *Shell) show() {
	st := s.ctrl.State()
	fmt.Fprintf(s.out, "trials=%d candidates=%d noise=%s\n",
		st.Params.Trials, st.Params.Candidates, strconv.FormatFloat(st.Params.Noise, 'f', 2, 64))
	fmt.Fprintf(s.out, "decoherence: %s\n", st.Decoherence.Label())
	fmt.Fprintf(s.out, "status: %s\n", st.Status)
	fmt.Fprintf(s.out, "runs: %d\n", st.Runs)
	if last := s.ctrl.Last(); last != nil {
		fmt.Fprintf(s.out, "last top match: Candidate %02d (%s)\n",
			last.Top.Candidate+1, strconv.FormatFloat(last.Top.Correlation, 'f', 3, 64))
	}
}

// Serve reads commands from in until EOF, "quit", or ctx is cancelled.
// Command errors are reported to the output and do not end the session.
func (s *Shell) Serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			fmt.Fprint(s.out, s.Prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading commands: %w", err)
			}
			return nil
		}

		err := s.Exec(scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func intArg(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <integer>: %w", name, models.ErrInvalidParameter)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer: %w", name, args[0], models.ErrInvalidParameter)
	}
	return n, nil
}

func floatArg(name string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <number>: %w", name, models.ErrInvalidParameter)
	}
	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", name, args[0], models.ErrInvalidParameter)
	}
	return f, nil
}
