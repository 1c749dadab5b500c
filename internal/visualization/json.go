package visualization

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jarch13/Entangle.Me/internal/models"
)

type resultView struct {
	Rank           int     `json:"rank"`
	Candidate      int     `json:"candidate"`
	Name           string  `json:"name"`
	Correlation    float64 `json:"correlation"`
	Tier           string  `json:"tier"`
	Interpretation string  `json:"interpretation"`
	Tone           string  `json:"tone"`
}

type reportView struct {
	RunID            string       `json:"run_id"`
	Trials           int          `json:"trials"`
	Candidates       int          `json:"candidates"`
	NoiseLevel       float64      `json:"noise_level"`
	Expected         float64      `json:"expected"`
	Decoherence      string       `json:"decoherence"`
	DecoherenceLabel string       `json:"decoherence_label"`
	Band             string       `json:"band"`
	Status           string       `json:"status"`
	Top              resultView   `json:"top"`
	Results          []resultView `json:"results"`
}

func newReportView(r *models.Report) reportView {
	v := reportView{
		RunID:            r.RunID,
		Trials:           r.Trials,
		Candidates:       r.Candidates,
		NoiseLevel:       r.NoiseLevel,
		Expected:         r.Expected,
		Decoherence:      r.Decoherence.String(),
		DecoherenceLabel: r.Decoherence.Label(),
		Band:             r.Band.String(),
		Status:           r.Status,
		Results:          make([]resultView, 0, len(r.Results)),
	}
	for k, res := range r.Results {
		v.Results = append(v.Results, newResultView(k+1, res))
	}
	if len(v.Results) > 0 {
		v.Top = v.Results[0]
	}
	return v
}

func newResultView(rank int, res models.CorrelationResult) resultView {
	return resultView{
		Rank:           rank,
		Candidate:      res.Candidate,
		Name:           CandidateName(res.Candidate),
		Correlation:    res.Correlation,
		Tier:           res.Tier.String(),
		Interpretation: res.Tier.Label(),
		Tone:           res.Tier.Tone(),
	}
}

// RenderJSON writes the report as indented JSON with display labels attached.
func RenderJSON(w io.Writer, r *models.Report) error {
	if r == nil {
		return fmt.Errorf("render json: nil report")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newReportView(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
