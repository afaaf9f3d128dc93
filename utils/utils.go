package utils

import (
	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/mat"
)

// Identity matrix.
func Eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// Diff returns the consecutive differences xs[k+1] - xs[k].
func Diff(xs []float64) []float64 {
	out := make([]float64, len(xs)-1)
	for k := range out {
		out[k] = xs[k+1] - xs[k]
	}
	return out
}

// TrapezoidWeights returns the composite trapezoidal integration weights
// for ordered sample points: w_k = (delta_{k-1} + delta_k) / 2, with
// zero-width gaps at both boundaries so the endpoints get half-weight.
func TrapezoidWeights(points []float64) []float64 {
	n := len(points)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	deltas := Diff(points)
	out[0] = deltas[0] / 2
	out[n-1] = deltas[n-2] / 2
	for k := 1; k < n-1; k++ {
		out[k] = (deltas[k-1] + deltas[k]) / 2
	}
	return out
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	return vec.Linspace(lo, hi, n)
}
