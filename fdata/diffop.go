package fdata

// DiffOp specifies a linear differential operator sum_i c_i * D^i by its
// coefficient sequence. The zero value is the zero operator.
type DiffOp struct {
	coeffs []float64
}

// Deriv returns the operator consisting of the pure order-th derivative,
// that is, coefficients (0, ..., 0, 1). Panics if order is negative.
func Deriv(order int) DiffOp {
	if order < 0 {
		panic("fdata: negative derivative order")
	}
	coeffs := make([]float64, order+1)
	coeffs[order] = 1
	return DiffOp{coeffs: coeffs}
}

// LinearDiffOp returns the operator with the given coefficients, where
// coeffs[i] scales the i-th derivative. For example, LinearDiffOp(0, 1, 2)
// penalizes the first derivative plus two times the second derivative.
func LinearDiffOp(coeffs ...float64) DiffOp {
	return DiffOp{coeffs: append([]float64(nil), coeffs...)}
}

// Coefficients returns a copy of the coefficient sequence.
func (op DiffOp) Coefficients() []float64 {
	return append([]float64(nil), op.coeffs...)
}

// Order returns the highest derivative order with a nonzero coefficient,
// or -1 for the zero operator.
func (op DiffOp) Order() int {
	for i := len(op.coeffs) - 1; i >= 0; i-- {
		if op.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether every coefficient is zero.
func (op DiffOp) IsZero() bool {
	return op.Order() < 0
}
