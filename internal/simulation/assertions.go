package simulation

import (
	"math"
	"testing"

	"github.com/jarch13/Entangle.Me/internal/models"
	"github.com/jarch13/Entangle.Me/internal/ranking"
)

// AssertMeanNear asserts that the mean linked correlation lies within tol
// of the theoretical expectation.
func AssertMeanNear(t testing.TB, result Result, tol float64) {
	t.Helper()
	if d := math.Abs(result.MeanLinked - result.Expected); d > tol {
		t.Errorf("AssertMeanNear: %s: mean linked correlation %.4f differs from expected %.4f by %.4f (tol %.4f)",
			result.Scenario.Name, result.MeanLinked, result.Expected, d, tol)
	}
}

// AssertDetectionRateAtLeast asserts that the linked candidate ranked first
// in at least min of the runs.
func AssertDetectionRateAtLeast(t testing.TB, result Result, min float64) {
	t.Helper()
	if result.DetectionRate < min {
		t.Errorf("AssertDetectionRateAtLeast: %s: detection rate %.3f < %.3f over %d runs",
			result.Scenario.Name, result.DetectionRate, min, len(result.Runs))
	}
}

// AssertDetectionRateAtMost asserts that the linked candidate ranked first
// in at most max of the runs.
func AssertDetectionRateAtMost(t testing.TB, result Result, max float64) {
	t.Helper()
	if result.DetectionRate > max {
		t.Errorf("AssertDetectionRateAtMost: %s: detection rate %.3f > %.3f over %d runs",
			result.Scenario.Name, result.DetectionRate, max, len(result.Runs))
	}
}

// AssertRanked asserts that every report in the result is sorted by
// descending |c| and that Top equals the first entry.
func AssertRanked(t testing.TB, result Result) {
	t.Helper()
	for _, run := range result.Runs {
		AssertReportRanked(t, run.Report)
	}
}

// AssertReportRanked asserts the ranking invariant for a single report.
func AssertReportRanked(t testing.TB, report *models.Report) {
	t.Helper()
	if !ranking.IsRanked(report.Results) {
		t.Errorf("AssertReportRanked: run %s: results not sorted by |c| descending", report.RunID)
	}
	if len(report.Results) > 0 && report.Top != report.Results[0] {
		t.Errorf("AssertReportRanked: run %s: top %+v is not the first result %+v", report.RunID, report.Top, report.Results[0])
	}
	if len(report.Results) != report.Candidates {
		t.Errorf("AssertReportRanked: run %s: %d results for %d candidates", report.RunID, len(report.Results), report.Candidates)
	}
}

// AssertMeanDecreasesWithNoise asserts that mean linked correlation falls
// as noise rises across a sweep, allowing slack for sampling error.
func AssertMeanDecreasesWithNoise(t testing.TB, results []Result, slack float64) {
	t.Helper()
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if cur.Scenario.Params.Noise <= prev.Scenario.Params.Noise {
			continue
		}
		if cur.MeanLinked > prev.MeanLinked+slack {
			t.Errorf("AssertMeanDecreasesWithNoise: p=%.3f mean %.4f > p=%.3f mean %.4f (+%.4f slack)",
				cur.Scenario.Params.Noise, cur.MeanLinked, prev.Scenario.Params.Noise, prev.MeanLinked, slack)
		}
	}
}
