package fpca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/fdata"
	"github.com/gofda/gofda/utils"
)

// PenaltyMatrix builds the P x P discrete approximation of the quadratic
// penalty induced by the differential operator op on functions sampled at
// the given strictly increasing points. Each order-i term contributes
// c_i * (D^i)^T (D^i), where D is a first-difference operator scaled by
// the local grid spacing; the order-zero term contributes c_0 * I.
func PenaltyMatrix(points []float64, op fdata.DiffOp) (*mat.Dense, error) {
	n := len(points)
	for k := 1; k < n; k++ {
		if points[k] <= points[k-1] {
			return nil, fmt.Errorf("fpca: penalty matrix: %w", fdata.ErrGridPoints)
		}
	}
	out := mat.NewDense(n, n, nil)
	if op.IsZero() {
		return out, nil
	}
	if op.Order() > n-1 {
		return nil, fmt.Errorf("%w: order %d on %d points", ErrPenaltyOrder, op.Order(), n)
	}
	coeffs := op.Coefficients()
	if coeffs[0] != 0 {
		eye := utils.Eye(n)
		eye.Scale(coeffs[0], eye)
		out.Add(out, eye)
	}
	if len(coeffs) == 1 {
		return out, nil
	}
	base := auxDiffMatrix(points) // (n-1) x n
	cur := mat.DenseCopyOf(base)
	var term mat.Dense
	for i := 1; i < len(coeffs); i++ {
		if i > 1 {
			// Chain another difference: D^i = D[0:n-i, 0:n-i+1] * D^(i-1).
			var next mat.Dense
			next.Mul(base.Slice(0, n-i, 0, n-i+1), cur)
			cur = &next
		}
		if coeffs[i] == 0 {
			continue
		}
		term.Mul(cur.T(), cur)
		term.Scale(coeffs[i], &term)
		out.Add(out, &term)
	}
	return out, nil
}

// auxDiffMatrix builds the (P-1) x P first-difference operator whose rows
// are scaled by the harmonic mean of the grid spacing: row k holds
// h_k at column k and -h_k at column k+1, with h_k = -(1/mean(1/delta)) / delta_k.
func auxDiffMatrix(points []float64) *mat.Dense {
	n := len(points)
	deltas := utils.Diff(points)
	invMean := 0.0
	for _, d := range deltas {
		invMean += 1 / d
	}
	invMean /= float64(n - 1)
	out := mat.NewDense(n-1, n, nil)
	for k, d := range deltas {
		h := -(1 / invMean) / d
		out.Set(k, k, h)
		out.Set(k, k+1, -h)
	}
	return out
}
