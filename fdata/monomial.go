package fdata

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	monomial *Monomial
	_        Basis = monomial // Check that Monomial respects the Basis interface.
)

// Monomial is the polynomial basis {1, x, x^2, ...} over an interval.
// Gram and penalty matrices have closed forms, so no quadrature is needed.
type Monomial struct {
	lo, hi float64
	n      int
}

func NewMonomial(lo, hi float64, nBasis int) (*Monomial, error) {
	if lo >= hi {
		return nil, ErrDomain
	}
	if nBasis < 1 {
		return nil, ErrBasisSize
	}
	return &Monomial{lo: lo, hi: hi, n: nBasis}, nil
}

func (b *Monomial) NBasis() int {
	return b.n
}

func (b *Monomial) DomainRange() (lo, hi float64) {
	return b.lo, b.hi
}

func (b *Monomial) Evaluate(x float64) []float64 {
	out := make([]float64, b.n)
	p := 1.0
	for i := range out {
		out[i] = p
		p *= x
	}
	return out
}

func (b *Monomial) EvalDeriv(x float64, order int) []float64 {
	out := make([]float64, b.n)
	for i := order; i < b.n; i++ {
		// D^k x^i = i!/(i-k)! * x^(i-k)
		out[i] = falling(i, order) * math.Pow(x, float64(i-order))
	}
	return out
}

func (b *Monomial) GramMatrix() *mat.Dense {
	out := mat.NewDense(b.n, b.n, nil)
	for i := 0; i < b.n; i++ {
		for j := 0; j < b.n; j++ {
			out.Set(i, j, b.integPow(i+j))
		}
	}
	return out
}

func (b *Monomial) InnerProduct(other Basis) (*mat.Dense, error) {
	if !sameDomain(b, other) {
		return nil, ErrDomainMismatch
	}
	if om, ok := other.(*Monomial); ok {
		out := mat.NewDense(b.n, om.n, nil)
		for i := 0; i < b.n; i++ {
			for j := 0; j < om.n; j++ {
				out.Set(i, j, b.integPow(i+j))
			}
		}
		return out, nil
	}
	return innerQuad(b, other), nil
}

func (b *Monomial) Penalty(op DiffOp) (*mat.Dense, error) {
	out := mat.NewDense(b.n, b.n, nil)
	coeffs := op.Coefficients()
	// P_ij = sum_{k,l} c_k c_l (i!/(i-k)!) (j!/(j-l)!) int x^(i+j-k-l)
	for i := 0; i < b.n; i++ {
		for j := 0; j < b.n; j++ {
			v := 0.0
			for k, ck := range coeffs {
				if ck == 0 || k > i {
					continue
				}
				for l, cl := range coeffs {
					if cl == 0 || l > j {
						continue
					}
					v += ck * cl * falling(i, k) * falling(j, l) *
						b.integPow(i+j-k-l)
				}
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func (b *Monomial) WithDomain(lo, hi float64) Basis {
	return &Monomial{lo: lo, hi: hi, n: b.n}
}

func (b *Monomial) Copy() Basis {
	c := *b
	return &c
}

// integPow is the integral of x^m over the domain.
func (b *Monomial) integPow(m int) float64 {
	e := float64(m + 1)
	return (math.Pow(b.hi, e) - math.Pow(b.lo, e)) / e
}

// falling is the falling factorial i * (i-1) * ... * (i-k+1).
func falling(i, k int) float64 {
	out := 1.0
	for t := 0; t < k; t++ {
		out *= float64(i - t)
	}
	return out
}
