package fdata

import (
	"gonum.org/v1/gonum/mat"
)

// BasisExpansion holds N functional samples expressed as coefficient
// vectors over a shared basis. The coefficient matrix is N x B.
type BasisExpansion struct {
	coefs *mat.Dense
	basis Basis
}

func NewBasisExpansion(coefs *mat.Dense, basis Basis) (*BasisExpansion, error) {
	_, b := coefs.Dims()
	if b != basis.NBasis() {
		return nil, ErrCoefDims
	}
	return &BasisExpansion{coefs: mat.DenseCopyOf(coefs), basis: basis.Copy()}, nil
}

// NSamples returns the number of functional samples N.
func (f *BasisExpansion) NSamples() int {
	n, _ := f.coefs.Dims()
	return n
}

// Basis returns the basis the coefficients are expressed over.
func (f *BasisExpansion) Basis() Basis {
	return f.basis
}

// Coefficients returns the N x B coefficient matrix. The matrix is
// shared, not copied; callers must treat it as read-only.
func (f *BasisExpansion) Coefficients() *mat.Dense {
	return f.coefs
}

// DomainRange returns the basis domain.
func (f *BasisExpansion) DomainRange() (lo, hi float64) {
	return f.basis.DomainRange()
}

// Mean returns the sample mean function as a one-sample expansion.
func (f *BasisExpansion) Mean() *BasisExpansion {
	n, b := f.coefs.Dims()
	m := mat.NewDense(1, b, nil)
	for j := 0; j < b; j++ {
		m.Set(0, j, mat.Sum(f.coefs.ColView(j))/float64(n))
	}
	return &BasisExpansion{coefs: m, basis: f.basis}
}

// CopyWithCoefs returns an expansion over the same basis holding new
// coefficients.
func (f *BasisExpansion) CopyWithCoefs(coefs *mat.Dense) (*BasisExpansion, error) {
	return NewBasisExpansion(coefs, f.basis)
}

// InnerProduct returns the matrix of pairwise inner products between the
// samples of f and the samples of other: C_f * J * C_other^T, where J is
// the cross inner-product matrix of the two bases.
func (f *BasisExpansion) InnerProduct(other *BasisExpansion) (*mat.Dense, error) {
	j, err := f.basis.InnerProduct(other.basis)
	if err != nil {
		return nil, err
	}
	var tmp, out mat.Dense
	tmp.Mul(f.coefs, j)
	out.Mul(&tmp, other.coefs.T())
	return &out, nil
}

// Eval evaluates every sample at the given points, applying the
// extrapolation strategy outside the domain. With ExtrapolationNone the
// raw basis formulas are used outside the domain, so the behavior depends
// on the basis family (periodic for Fourier, polynomial for Monomial).
func (f *BasisExpansion) Eval(xs []float64, extrapolation Extrapolation) *mat.Dense {
	lo, hi := f.basis.DomainRange()
	n := f.NSamples()
	out := mat.NewDense(n, len(xs), nil)
	for k, x := range xs {
		xx, override, overridden := extrapolation.apply(x, lo, hi)
		if overridden {
			for i := 0; i < n; i++ {
				out.Set(i, k, override)
			}
			continue
		}
		vals := f.basis.Evaluate(xx)
		for i := 0; i < n; i++ {
			v := 0.0
			for b, phi := range vals {
				v += f.coefs.At(i, b) * phi
			}
			out.Set(i, k, v)
		}
	}
	return out
}
