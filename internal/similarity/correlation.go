package similarity

import (
	"fmt"

	"github.com/jarch13/Entangle.Me/internal/models"
)

// Correlation returns the mean elementwise product of two bipolar sequences,
// (1/T) * Σ a[t]*b[t]. For ±1 data this equals the Pearson coefficient, so
// the result lies in [-1, 1]: the sign gives direction, the magnitude strength.
//
// Sequences of different length return ErrShapeMismatch; empty sequences
// return ErrInvalidParameter.
func Correlation(a, b models.Sequence) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("correlation of %d and %d trials: %w", a.Len(), b.Len(), models.ErrShapeMismatch)
	}
	if a.Len() == 0 {
		return 0, fmt.Errorf("correlation of empty sequences: %w", models.ErrInvalidParameter)
	}

	sum := 0
	for t := 0; t < a.Len(); t++ {
		sum += int(a.At(t)) * int(b.At(t))
	}
	return float64(sum) / float64(a.Len()), nil
}
