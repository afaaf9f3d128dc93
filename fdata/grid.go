package fdata

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Grid holds N functional samples discretized on a shared grid. The data
// matrix is N x P, where P is the total number of grid points; the grid
// itself is stored as one ordered point slice per domain axis, so inputs
// over higher-dimensional domains remain representable and callers that
// only support one-dimensional domains can reject them.
type Grid struct {
	data   *mat.Dense
	points [][]float64
}

// NewGrid builds a grid-form sample set over a one-dimensional domain.
func NewGrid(data *mat.Dense, points []float64) (*Grid, error) {
	return NewGridND(data, [][]float64{points})
}

// NewGridND builds a grid-form sample set over a multi-axis grid, with
// the data matrix columns enumerating the flattened grid.
func NewGridND(data *mat.Dense, points [][]float64) (*Grid, error) {
	total := 1
	for _, axis := range points {
		if len(axis) == 0 {
			return nil, ErrGridPoints
		}
		for k := 1; k < len(axis); k++ {
			if axis[k] <= axis[k-1] {
				return nil, ErrGridPoints
			}
		}
		total *= len(axis)
	}
	if len(points) == 0 {
		return nil, ErrGridPoints
	}
	_, p := data.Dims()
	if p != total {
		return nil, ErrDims
	}
	cp := make([][]float64, len(points))
	for i, axis := range points {
		cp[i] = append([]float64(nil), axis...)
	}
	return &Grid{data: mat.DenseCopyOf(data), points: cp}, nil
}

// NSamples returns the number of functional samples N.
func (g *Grid) NSamples() int {
	n, _ := g.data.Dims()
	return n
}

// NPoints returns the total number of discretization points P.
func (g *Grid) NPoints() int {
	_, p := g.data.Dims()
	return p
}

// DomainDim returns the number of domain axes.
func (g *Grid) DomainDim() int {
	return len(g.points)
}

// Points returns the sample locations of the first domain axis.
func (g *Grid) Points() []float64 {
	return g.points[0]
}

// DataMatrix returns the N x P value matrix. The matrix is shared, not
// copied; callers must treat it as read-only.
func (g *Grid) DataMatrix() *mat.Dense {
	return g.data
}

// DomainRange returns the bounds of the first domain axis.
func (g *Grid) DomainRange() (lo, hi float64) {
	axis := g.points[0]
	return axis[0], axis[len(axis)-1]
}

// Mean returns the pointwise mean function as a one-sample grid.
func (g *Grid) Mean() *Grid {
	n, p := g.data.Dims()
	m := mat.NewDense(1, p, nil)
	for j := 0; j < p; j++ {
		m.Set(0, j, mat.Sum(g.data.ColView(j))/float64(n))
	}
	return &Grid{data: m, points: g.points}
}

// CopyWithData returns a grid over the same points holding new values.
func (g *Grid) CopyWithData(data *mat.Dense) (*Grid, error) {
	return NewGridND(data, g.points)
}

// Eval evaluates every sample at the given points by linear interpolation,
// applying the extrapolation strategy outside the domain. Only
// one-dimensional domains are supported.
func (g *Grid) Eval(xs []float64, extrapolation Extrapolation) (*mat.Dense, error) {
	if g.DomainDim() != 1 {
		return nil, ErrDims
	}
	lo, hi := g.DomainRange()
	n := g.NSamples()
	out := mat.NewDense(n, len(xs), nil)
	for k, x := range xs {
		xx, override, overridden := extrapolation.apply(x, lo, hi)
		for i := 0; i < n; i++ {
			v := override
			if !overridden {
				v = g.interp(i, xx)
			}
			out.Set(i, k, v)
		}
	}
	return out, nil
}

// interp linearly interpolates sample i at x, extending the boundary
// segments for points outside the grid.
func (g *Grid) interp(i int, x float64) float64 {
	pts := g.points[0]
	p := len(pts)
	if p == 1 {
		return g.data.At(i, 0)
	}
	// Index of the segment [pts[k], pts[k+1]] containing x.
	k := sort.SearchFloat64s(pts, x) - 1
	if k < 0 {
		k = 0
	}
	if k > p-2 {
		k = p - 2
	}
	t := (x - pts[k]) / (pts[k+1] - pts[k])
	return g.data.At(i, k)*(1-t) + g.data.At(i, k+1)*t
}

// ToBasis projects the grid samples onto a basis by least squares over
// the grid points, returning the samples in basis form.
func (g *Grid) ToBasis(b Basis) (*BasisExpansion, error) {
	if g.DomainDim() != 1 {
		return nil, ErrDims
	}
	phi := evalAll(b, g.points[0], 0) // P x B
	var ct mat.Dense
	if err := ct.Solve(phi, g.data.T()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}
	coefs := mat.DenseCopyOf(ct.T())
	return NewBasisExpansion(coefs, b)
}
