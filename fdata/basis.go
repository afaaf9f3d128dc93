package fdata

import (
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/utils"
)

// Basis is a finite set of functions spanning a space over an interval.
// Functional samples in basis form are coefficient vectors over a Basis.
type Basis interface {
	// NBasis is the dimension of the basis.
	NBasis() int

	// DomainRange is the interval of definition.
	DomainRange() (lo, hi float64)

	// Evaluate returns the value of every basis function at x.
	Evaluate(x float64) []float64

	// EvalDeriv returns the order-th derivative of every basis function
	// at x. Order zero is Evaluate.
	EvalDeriv(x float64, order int) []float64

	// GramMatrix returns the matrix of pairwise inner products of the
	// basis functions. Callers must not assume exact symmetry: entries
	// obtained by quadrature may differ in the last bits.
	GramMatrix() *mat.Dense

	// InnerProduct returns the cross inner-product matrix between this
	// basis and another defined over the same domain.
	InnerProduct(other Basis) (*mat.Dense, error)

	// Penalty returns the quadratic-form matrix of the roughness penalty
	// induced by the differential operator op.
	Penalty(op DiffOp) (*mat.Dense, error)

	// WithDomain returns a copy of the basis redefined over [lo, hi].
	WithDomain(lo, hi float64) Basis

	// Copy returns a value-copy of the basis definition.
	Copy() Basis
}

// Number of quadrature nodes used by the numeric fallbacks below.
const quadNodes = 1001

// evalAll evaluates the order-th derivative of every function of b on xs,
// returning a len(xs) x NBasis matrix.
func evalAll(b Basis, xs []float64, order int) *mat.Dense {
	out := mat.NewDense(len(xs), b.NBasis(), nil)
	for k, x := range xs {
		out.SetRow(k, b.EvalDeriv(x, order))
	}
	return out
}

// innerQuad computes the cross inner-product matrix between two bases by
// composite Simpson quadrature over their common domain.
func innerQuad(a, b Basis) *mat.Dense {
	lo, hi := a.DomainRange()
	xs := utils.Linspace(lo, hi, quadNodes)
	va := evalAll(a, xs, 0)
	vb := evalAll(b, xs, 0)
	return quadProducts(xs, va, vb)
}

// penaltyQuad computes the penalty matrix int (L phi_i)(L phi_j) for the
// operator L given by coeffs, by quadrature on the operator images.
func penaltyQuad(b Basis, coeffs []float64) *mat.Dense {
	lo, hi := b.DomainRange()
	xs := utils.Linspace(lo, hi, quadNodes)
	img := mat.NewDense(len(xs), b.NBasis(), nil)
	for order, c := range coeffs {
		if c == 0 {
			continue
		}
		d := evalAll(b, xs, order)
		d.Scale(c, d)
		img.Add(img, d)
	}
	return quadProducts(xs, img, img)
}

// quadProducts integrates the pairwise products of the columns of va and
// vb, both sampled on xs.
func quadProducts(xs []float64, va, vb *mat.Dense) *mat.Dense {
	_, na := va.Dims()
	_, nb := vb.Dims()
	out := mat.NewDense(na, nb, nil)
	f := make([]float64, len(xs))
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			for k := range xs {
				f[k] = va.At(k, i) * vb.At(k, j)
			}
			out.Set(i, j, integrate.Simpsons(xs, f))
		}
	}
	return out
}

// sameDomain reports whether two bases share the same interval.
func sameDomain(a, b Basis) bool {
	alo, ahi := a.DomainRange()
	blo, bhi := b.DomainRange()
	return alo == blo && ahi == bhi
}
