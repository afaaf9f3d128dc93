package fdata

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/utils"
)

var (
	fourier *Fourier
	_       Basis = fourier // Check that Fourier respects the Basis interface.
)

// Fourier is the trigonometric basis over one period [lo, hi]:
//
//	1/sqrt(T), sqrt(2/T) sin(r w u), sqrt(2/T) cos(r w u), ...
//
// with u = x - lo, T = hi - lo and w = 2 pi / T. The functions are
// orthonormal over the domain, so the Gram matrix is the identity.
type Fourier struct {
	lo, hi float64
	n      int
}

func NewFourier(lo, hi float64, nBasis int) (*Fourier, error) {
	if lo >= hi {
		return nil, ErrDomain
	}
	if nBasis < 1 {
		return nil, ErrBasisSize
	}
	return &Fourier{lo: lo, hi: hi, n: nBasis}, nil
}

func (b *Fourier) NBasis() int {
	return b.n
}

func (b *Fourier) DomainRange() (lo, hi float64) {
	return b.lo, b.hi
}

func (b *Fourier) Evaluate(x float64) []float64 {
	return b.EvalDeriv(x, 0)
}

func (b *Fourier) EvalDeriv(x float64, order int) []float64 {
	out := make([]float64, b.n)
	period := b.hi - b.lo
	u := x - b.lo
	if order == 0 {
		out[0] = 1 / math.Sqrt(period)
	}
	amp := math.Sqrt(2 / period)
	shift := float64(order) * math.Pi / 2
	for i := 1; i < b.n; i++ {
		r := float64((i + 1) / 2)
		w := r * 2 * math.Pi / period
		scale := amp * math.Pow(w, float64(order))
		if i%2 == 1 {
			// D^k sin(w u) = w^k sin(w u + k pi/2)
			out[i] = scale * math.Sin(w*u+shift)
		} else {
			out[i] = scale * math.Cos(w*u+shift)
		}
	}
	return out
}

func (b *Fourier) GramMatrix() *mat.Dense {
	return utils.Eye(b.n)
}

func (b *Fourier) InnerProduct(other Basis) (*mat.Dense, error) {
	if !sameDomain(b, other) {
		return nil, ErrDomainMismatch
	}
	if of, ok := other.(*Fourier); ok {
		// Same family over the same period: orthonormal cross products.
		out := mat.NewDense(b.n, of.n, nil)
		for i := 0; i < b.n && i < of.n; i++ {
			out.Set(i, i, 1)
		}
		return out, nil
	}
	return innerQuad(b, other), nil
}

func (b *Fourier) Penalty(op DiffOp) (*mat.Dense, error) {
	coeffs := op.Coefficients()
	if order := op.Order(); order >= 0 && isPureDeriv(coeffs, order) {
		// Derivatives keep each frequency pair orthogonal over whole
		// periods, so the penalty is diagonal with (r w)^(2 order).
		out := mat.NewDense(b.n, b.n, nil)
		period := b.hi - b.lo
		if order == 0 {
			out.Set(0, 0, 1)
		}
		for i := 1; i < b.n; i++ {
			r := float64((i + 1) / 2)
			w := r * 2 * math.Pi / period
			out.Set(i, i, math.Pow(w, 2*float64(order)))
		}
		return out, nil
	}
	return penaltyQuad(b, coeffs), nil
}

func (b *Fourier) WithDomain(lo, hi float64) Basis {
	return &Fourier{lo: lo, hi: hi, n: b.n}
}

func (b *Fourier) Copy() Basis {
	c := *b
	return &c
}

// isPureDeriv reports whether coeffs is (0, ..., 0, 1) of the given order.
func isPureDeriv(coeffs []float64, order int) bool {
	for i, c := range coeffs {
		if i == order && c != 1 {
			return false
		}
		if i != order && c != 0 {
			return false
		}
	}
	return true
}
