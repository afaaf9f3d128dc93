package fpca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/fdata"
)

func monomialExpansion(t *testing.T, coefs *mat.Dense) *fdata.BasisExpansion {
	t.Helper()
	_, nb := coefs.Dims()
	basis, err := fdata.NewMonomial(0, 1, nb)
	require.NoError(t, err)
	fd, err := fdata.NewBasisExpansion(coefs, basis)
	require.NoError(t, err)
	return fd
}

func TestBasisFit_MonomialKnownValues(t *testing.T) {
	// Two samples 1 and 2x over the monomials on [0, 1]. Centering leaves
	// rows +-(0.5, -1); with the monomial Gram [[1, 1/2], [1/2, 1/3]] the
	// whitened matrix has squared Frobenius norm 1/12, all in one
	// direction.
	fd := monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))
	m := NewBasis(Config{NComponents: 2, Centering: true})
	require.NoError(t, m.Fit(fd))

	values, err := m.ComponentValues()
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.InDelta(t, 1.0/12.0, values[0], 1e-12)
	assert.InDelta(t, 0.0, values[1], 1e-12)
	assert.GreaterOrEqual(t, values[0], values[1])

	ratio, err := m.ExplainedVarianceRatio()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ratio[0], 1e-12)
	assert.InDelta(t, 0.0, ratio[1], 1e-12)

	comps, err := m.Components()
	require.NoError(t, err)
	assert.Equal(t, 2, comps.NSamples())
	assert.Equal(t, 2, comps.Basis().NBasis())
}

func TestBasisFit_FourierScoresRoundTrip(t *testing.T) {
	// The Fourier basis is orthonormal over one period, so whitening is
	// the identity and the centered training scores obey
	// Z^T Z = N * diag(component values).
	basis, err := fdata.NewFourier(0, 1, 3)
	require.NoError(t, err)
	coefs := mat.NewDense(4, 3, []float64{
		1.0, 0.2, -0.5,
		0.4, 1.1, 0.3,
		-0.7, 0.5, 0.9,
		0.2, -0.8, 0.1,
	})
	fd, err := fdata.NewBasisExpansion(coefs, basis)
	require.NoError(t, err)

	m := NewBasis(Config{NComponents: 3, Centering: true})
	scores, err := m.FitTransform(fd)
	require.NoError(t, err)

	values, err := m.ComponentValues()
	require.NoError(t, err)
	var gram mat.Dense
	gram.Mul(scores.T(), scores)
	n := float64(fd.NSamples())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = n * values[i]
			}
			assert.InDelta(t, want, gram.At(i, j), 1e-8)
		}
	}
}

func TestBasisFit_PreconditionsBeforeLinearAlgebra(t *testing.T) {
	// The sample-count check fires before any Gram or penalty matrix is
	// touched, even with regularization configured.
	fd := monomialExpansion(t, mat.NewDense(2, 3, []float64{1, 0, 0, 0, 2, 0}))
	m := NewBasis(Config{
		NComponents: 3,
		Centering:   true,
		Lambda:      1,
		Penalty:     fdata.Deriv(2),
	})
	assert.ErrorIs(t, m.Fit(fd), ErrInsufficientSamples)
}

func TestBasisFit_TooManyComponents(t *testing.T) {
	fd := monomialExpansion(t, mat.NewDense(3, 2, []float64{1, 0, 0, 2, 1, 1}))
	m := NewBasis(Config{NComponents: 3, Centering: true})
	assert.ErrorIs(t, m.Fit(fd), ErrTooManyComponents)
}

// zeroBasis has an identically zero Gram matrix, which no Cholesky
// factorization can accept.
type zeroBasis struct {
	lo, hi float64
	n      int
}

func (b *zeroBasis) NBasis() int                    { return b.n }
func (b *zeroBasis) DomainRange() (float64, float64) { return b.lo, b.hi }
func (b *zeroBasis) Evaluate(x float64) []float64    { return make([]float64, b.n) }
func (b *zeroBasis) EvalDeriv(x float64, order int) []float64 {
	return make([]float64, b.n)
}
func (b *zeroBasis) GramMatrix() *mat.Dense { return mat.NewDense(b.n, b.n, nil) }
func (b *zeroBasis) InnerProduct(other fdata.Basis) (*mat.Dense, error) {
	return mat.NewDense(b.n, other.NBasis(), nil), nil
}
func (b *zeroBasis) Penalty(op fdata.DiffOp) (*mat.Dense, error) {
	return mat.NewDense(b.n, b.n, nil), nil
}
func (b *zeroBasis) WithDomain(lo, hi float64) fdata.Basis {
	return &zeroBasis{lo: lo, hi: hi, n: b.n}
}
func (b *zeroBasis) Copy() fdata.Basis { c := *b; return &c }

var _ fdata.Basis = (*zeroBasis)(nil)

func TestBasisFit_NonPositiveDefiniteGram(t *testing.T) {
	fd, err := fdata.NewBasisExpansion(
		mat.NewDense(2, 2, []float64{1, 0, 0, 2}),
		&zeroBasis{lo: 0, hi: 1, n: 2},
	)
	require.NoError(t, err)
	m := NewBasis(Config{NComponents: 1, Centering: true})
	assert.ErrorIs(t, m.Fit(fd), ErrNonPositiveDefiniteGram)
}

func TestBasisFit_WithComponentsBasis(t *testing.T) {
	fd := monomialExpansion(t, mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		1, 1, 1,
	}))
	// Target basis declared over a different interval: Fit snaps it to
	// the input's domain.
	target, err := fdata.NewFourier(0, 2, 3)
	require.NoError(t, err)
	m := NewBasis(Config{NComponents: 2, Centering: true}, WithComponentsBasis(target))
	require.NoError(t, m.Fit(fd))

	comps, err := m.Components()
	require.NoError(t, err)
	lo, hi := comps.Basis().DomainRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.Equal(t, 2, comps.NSamples())
	assert.Equal(t, 3, comps.Basis().NBasis())

	values, err := m.ComponentValues()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, values[0], values[1])
}

func TestBasisFit_RegularizationMonotone(t *testing.T) {
	coefs := mat.NewDense(4, 3, []float64{
		1.0, 0.2, -0.5,
		0.4, 1.1, 0.3,
		-0.7, 0.5, 0.9,
		0.2, -0.8, 0.1,
	})
	plain := NewBasis(Config{NComponents: 2, Centering: true})
	require.NoError(t, plain.Fit(monomialExpansion(t, mat.DenseCopyOf(coefs))))
	plainValues, err := plain.ComponentValues()
	require.NoError(t, err)

	for _, lambda := range []float64{0.1, 1, 10} {
		reg := NewBasis(Config{
			NComponents: 2,
			Centering:   true,
			Lambda:      lambda,
			Penalty:     fdata.Deriv(2),
		})
		require.NoError(t, reg.Fit(monomialExpansion(t, mat.DenseCopyOf(coefs))))
		regValues, err := reg.ComponentValues()
		require.NoError(t, err)
		assert.LessOrEqual(t, regValues[0], plainValues[0]+1e-10)
	}
}

func TestBasisFit_FailedRefitKeepsState(t *testing.T) {
	m := NewBasis(Config{NComponents: 2, Centering: true})
	require.NoError(t, m.Fit(monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))))
	before, err := m.ComponentValues()
	require.NoError(t, err)

	one := monomialExpansion(t, mat.NewDense(1, 2, []float64{1, 2}))
	assert.ErrorIs(t, m.Fit(one), ErrInsufficientSamples)

	after, err := m.ComponentValues()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBasisTransform_NotFitted(t *testing.T) {
	fd := monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))
	m := NewBasis(Config{NComponents: 1})
	_, err := m.Transform(fd)
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = m.ComponentValues()
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = m.ExplainedVarianceRatio()
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = m.Components()
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = m.MeanFunction()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestBasisTransform_Idempotent(t *testing.T) {
	fd := monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))
	m := NewBasis(Config{NComponents: 2, Centering: true})
	require.NoError(t, m.Fit(fd))
	s1, err := m.Transform(fd)
	require.NoError(t, err)
	s2, err := m.Transform(fd)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(s1, s2, 0))
}

func TestBasisTransform_CenterTransform(t *testing.T) {
	fd := monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))
	m := NewBasis(Config{NComponents: 2, Centering: true, CenterTransform: true})
	trained, err := m.FitTransform(fd)
	require.NoError(t, err)
	// With CenterTransform the training data projects back to the same
	// scores the fit was computed from.
	again, err := m.Transform(fd)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(trained, again, 1e-12))
}

func TestBasisTransform_CenterTransformDimMismatch(t *testing.T) {
	m := NewBasis(Config{NComponents: 2, Centering: true, CenterTransform: true})
	require.NoError(t, m.Fit(monomialExpansion(t, mat.NewDense(2, 2, []float64{1, 0, 0, 2}))))
	other := monomialExpansion(t, mat.NewDense(1, 3, []float64{1, 2, 3}))
	_, err := m.Transform(other)
	assert.ErrorIs(t, err, fdata.ErrCoefDims)
}
