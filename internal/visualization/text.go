package visualization

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jarch13/Entangle.Me/internal/constants"
	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/muesli/termenv"
)

// Options control text rendering.
type Options struct {
	// Color enables ANSI styling of tones regardless of the writer.
	Color bool
}

var (
	colorGood  = lipgloss.Color("#2CD7C7")
	colorWarn  = lipgloss.Color("#F4D03F")
	colorBad   = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#2C4A54")
)

type palette struct {
	title lipgloss.Style
	muted lipgloss.Style
	tones map[string]lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		tones: map[string]lipgloss.Style{
			"good": r.NewStyle().Foreground(colorGood),
			"warn": r.NewStyle().Foreground(colorWarn),
			"bad":  r.NewStyle().Foreground(colorBad),
		},
	}
}

func (p palette) tone(name, s string) string {
	if st, ok := p.tones[name]; ok {
		return st.Render(s)
	}
	return s
}

// bandTone maps the expected-correlation band onto a display tone.
func bandTone(r *models.Report) string {
	switch r.Band {
	case constants.BandObvious:
		return "good"
	case constants.BandMoreTrials:
		return "warn"
	default:
		return "bad"
	}
}

// RenderText writes a human-readable report: status, top match,
// decoherence, and the ranked table.
func RenderText(w io.Writer, r *models.Report, opts Options) error {
	if r == nil {
		return fmt.Errorf("render text: nil report")
	}
	p := newPalette(w, opts.Color)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.title.Render("Status:     "), p.tone(bandTone(r), r.Status))
	fmt.Fprintf(&b, "%s %s  %s (abs %s)\n",
		p.title.Render("Top match:  "),
		CandidateName(r.Top.Candidate),
		FormatFixed(r.Top.Correlation, 3),
		FormatFixed(math.Abs(r.Top.Correlation), 3))
	fmt.Fprintf(&b, "%s %s\n", p.title.Render("Decoherence:"), r.Decoherence.Label())
	fmt.Fprintf(&b, "%s\n\n", p.muted.Render(fmt.Sprintf(
		"trials=%d candidates=%d noise=%s expected=%s run=%s",
		r.Trials, r.Candidates, FormatFixed(r.NoiseLevel, 2), FormatFixed(r.Expected, 3), r.RunID)))

	fmt.Fprintf(&b, "%4s  %-14s %11s  %s\n", "Rank", "Candidate", "Correlation", "Interpretation")
	for k, res := range r.Results {
		fmt.Fprintf(&b, "%4d  %s %-12s %11s  %s\n",
			k+1,
			p.tone(res.Tier.Tone(), "●"),
			CandidateName(res.Candidate),
			FormatFixed(res.Correlation, 3),
			res.Tier.Label())
	}

	_, err := io.WriteString(w, b.String())
	return err
}
