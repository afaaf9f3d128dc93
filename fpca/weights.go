package fpca

import (
	"fmt"

	"github.com/gofda/gofda/utils"
)

// resolveWeights derives the integration weight vector for one fit call.
// Precedence: an explicit vector, then a weight function evaluated on the
// grid, then composite trapezoidal weights. The result is always a fresh
// slice; caller-supplied configuration is never written to, so repeated
// fits on different grids resolve independently.
func resolveWeights(points []float64, weights []float64, weightFunc func([]float64) []float64) ([]float64, error) {
	var w []float64
	switch {
	case weights != nil:
		w = append([]float64(nil), weights...)
	case weightFunc != nil:
		w = weightFunc(append([]float64(nil), points...))
	default:
		w = utils.TrapezoidWeights(points)
	}
	if len(w) != len(points) {
		return nil, fmt.Errorf("%w: got %d weights for %d points", ErrInvalidWeight, len(w), len(points))
	}
	for k, v := range w {
		if v < 0 {
			return nil, fmt.Errorf("%w: weight %g at index %d", ErrInvalidWeight, v, k)
		}
		if v == 0 {
			return nil, fmt.Errorf("%w: weight at index %d", ErrSingularWeightMatrix, k)
		}
	}
	return w, nil
}
