package detection

import (
	"errors"

	"github.com/ironsheep/lane-vision/internal/imaging"
)

// ErrEmptyProjection is returned when searching a projection with no columns.
var ErrEmptyProjection = errors.New("empty projection")

// PeakIndex returns the index of the largest entry in a projection.
//
// Parameters:
//   - p: Per-column activation totals, as produced by imaging.ColumnProjection.
//
// Returns:
//   - int: Index of the strongest column. Ties resolve to the lowest index, so
//     an all-zero projection peaks at 0.
//   - error: Non-nil when p has no columns.
//
// # Errors
//
//   - ErrEmptyProjection if len(p) == 0
func PeakIndex(p imaging.Projection) (int, error) {
	if len(p) == 0 {
		return 0, ErrEmptyProjection
	}

	best := 0
	for i := 1; i < len(p); i++ {
		if p[i] > p[best] {
			best = i
		}
	}
	return best, nil
}

// FirstAbove returns the index of the first entry strictly greater than
// activation.
//
// Parameters:
//   - p: Per-column activation totals of a side strip.
//   - activation: Count a column must exceed to qualify.
//
// Returns:
//   - int: Index of the first qualifying column, relative to the strip start.
//     Zero when none qualifies.
//   - bool: False when no column qualifies, including for an empty projection.
func FirstAbove(p imaging.Projection, activation int) (int, bool) {
	for i, v := range p {
		if v > activation {
			return i, true
		}
	}
	return 0, false
}
