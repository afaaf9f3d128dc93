// Package depth implements depth functionals for grid-form functional
// data. A depth measures how central a curve is within a sample of
// curves; deeper curves are more representative of the sample.
package depth

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gofda/gofda/fdata"
	"github.com/gofda/gofda/utils"
)

var (
	// ErrNotFitted indicates use of a depth functional before Fit.
	ErrNotFitted = errors.New("depth: functional has not been fitted")
	// ErrDomain indicates grid input over a domain that is not
	// one-dimensional.
	ErrDomain = errors.New("depth: only one-dimensional domains are supported")
	// ErrGridMismatch indicates evaluation on a grid different from the
	// training grid.
	ErrGridMismatch = errors.New("depth: evaluation grid does not match the training grid")
)

// IntegratedDepth is the Fraiman-Muniz depth: pointwise centrality with
// respect to the empirical distribution of the training curves,
// integrated across the domain with trapezoidal weights. Depths lie in
// [1/2, 1].
type IntegratedDepth struct {
	sorted  [][]float64 // per grid point, ascending training values
	weights []float64   // normalized integration weights
	nPoints int
	nTrain  int
}

func NewIntegratedDepth() *IntegratedDepth {
	return &IntegratedDepth{}
}

// Fit records the empirical pointwise distributions of the training
// curves and the integration weights of their grid.
func (d *IntegratedDepth) Fit(train *fdata.Grid) error {
	if train.DomainDim() != 1 {
		return ErrDomain
	}
	points := train.Points()
	n := train.NSamples()
	p := train.NPoints()
	sorted := make([][]float64, p)
	data := train.DataMatrix()
	for k := 0; k < p; k++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = data.At(i, k)
		}
		sort.Float64s(col)
		sorted[k] = col
	}
	weights := utils.TrapezoidWeights(points)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total > 0 {
		for k := range weights {
			weights[k] /= total
		}
	} else {
		// Degenerate single-point grid: all mass on the one point.
		weights = []float64{1}
	}
	d.sorted = sorted
	d.weights = weights
	d.nPoints = p
	d.nTrain = n
	return nil
}

// Depths returns the integrated depth of each sample of x with respect
// to the fitted training set. x must share the training grid shape.
func (d *IntegratedDepth) Depths(x *fdata.Grid) ([]float64, error) {
	if d.sorted == nil {
		return nil, ErrNotFitted
	}
	if x.DomainDim() != 1 {
		return nil, ErrDomain
	}
	if x.NPoints() != d.nPoints {
		return nil, fmt.Errorf("%w: %d points, want %d", ErrGridMismatch, x.NPoints(), d.nPoints)
	}
	data := x.DataMatrix()
	out := make([]float64, x.NSamples())
	for i := range out {
		depth := 0.0
		for k := 0; k < d.nPoints; k++ {
			f := d.ecdf(k, data.At(i, k))
			centr := 0.5 - f
			if centr < 0 {
				centr = -centr
			}
			depth += d.weights[k] * (1 - centr)
		}
		out[i] = depth
	}
	return out, nil
}

// ecdf is the empirical CDF of the training values at grid point k.
func (d *IntegratedDepth) ecdf(k int, v float64) float64 {
	col := d.sorted[k]
	// Count of training values <= v.
	c := sort.SearchFloat64s(col, v)
	for c < len(col) && col[c] == v {
		c++
	}
	return float64(c) / float64(d.nTrain)
}
