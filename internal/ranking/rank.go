package ranking

import (
	"math"
	"sort"

	"github.com/jarch13/Entangle.Me/internal/models"
)

// Rank returns a copy of results sorted by |correlation| descending.
// Strong correlation in either direction stands out equally. Ties keep their
// input order, though callers must not rely on that.
func Rank(results []models.CorrelationResult) []models.CorrelationResult {
	ranked := make([]models.CorrelationResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Correlation) > math.Abs(ranked[j].Correlation)
	})
	return ranked
}

// IsRanked reports whether results are ordered by |correlation| descending.
func IsRanked(results []models.CorrelationResult) bool {
	for i := 1; i < len(results); i++ {
		if math.Abs(results[i].Correlation) > math.Abs(results[i-1].Correlation) {
			return false
		}
	}
	return true
}

// Position returns the zero-based rank of candidate in results, or -1.
func Position(results []models.CorrelationResult, candidate int) int {
	for i, r := range results {
		if r.Candidate == candidate {
			return i
		}
	}
	return -1
}
