package fdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonomial_Validation(t *testing.T) {
	_, err := NewMonomial(1, 0, 2)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = NewMonomial(0, 1, 0)
	assert.ErrorIs(t, err, ErrBasisSize)
}

func TestMonomial_Evaluate(t *testing.T) {
	b, err := NewMonomial(0, 1, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 4}, b.Evaluate(2), 1e-15)
	// First derivative of {1, x, x^2} is {0, 1, 2x}.
	assert.InDeltaSlice(t, []float64{0, 1, 4}, b.EvalDeriv(2, 1), 1e-15)
	// Second derivative is {0, 0, 2}.
	assert.InDeltaSlice(t, []float64{0, 0, 2}, b.EvalDeriv(2, 2), 1e-15)
}

func TestMonomial_GramClosedForm(t *testing.T) {
	b, err := NewMonomial(0, 1, 3)
	require.NoError(t, err)
	g := b.GramMatrix()
	// G_ij = 1/(i+j+1) over [0, 1].
	want := [][]float64{
		{1, 1.0 / 2, 1.0 / 3},
		{1.0 / 2, 1.0 / 3, 1.0 / 4},
		{1.0 / 3, 1.0 / 4, 1.0 / 5},
	}
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, want[i], g.RawRowView(i), 1e-15)
	}
}

func TestMonomial_GramMatchesQuadrature(t *testing.T) {
	b, err := NewMonomial(0, 2, 4)
	require.NoError(t, err)
	g := b.GramMatrix()
	q := innerQuad(b, b)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, g.At(i, j), q.At(i, j), 1e-8)
		}
	}
}

func TestMonomial_PenaltySecondDerivative(t *testing.T) {
	b, err := NewMonomial(0, 1, 3)
	require.NoError(t, err)
	p, err := b.Penalty(Deriv(2))
	require.NoError(t, err)
	// Only x^2 has a nonzero second derivative (2), so the sole nonzero
	// entry is int 2*2 = 4.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == 2 && j == 2 {
				want = 4.0
			}
			assert.InDelta(t, want, p.At(i, j), 1e-15)
		}
	}
}

func TestMonomial_PenaltyZeroOrderIsGram(t *testing.T) {
	b, err := NewMonomial(0, 1, 3)
	require.NoError(t, err)
	p, err := b.Penalty(Deriv(0))
	require.NoError(t, err)
	g := b.GramMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, g.At(i, j), p.At(i, j), 1e-15)
		}
	}
}

func TestMonomial_InnerProductMismatchedDomain(t *testing.T) {
	a, err := NewMonomial(0, 1, 2)
	require.NoError(t, err)
	b, err := NewMonomial(0, 2, 2)
	require.NoError(t, err)
	_, err = a.InnerProduct(b)
	assert.ErrorIs(t, err, ErrDomainMismatch)
}

func TestMonomial_WithDomain(t *testing.T) {
	a, err := NewMonomial(0, 1, 2)
	require.NoError(t, err)
	b := a.WithDomain(-1, 1)
	lo, hi := b.DomainRange()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
	// The original is untouched.
	lo, hi = a.DomainRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestDiffOp(t *testing.T) {
	op := Deriv(2)
	assert.Equal(t, []float64{0, 0, 1}, op.Coefficients())
	assert.Equal(t, 2, op.Order())
	assert.False(t, op.IsZero())

	op = LinearDiffOp(0, 1, 2)
	assert.Equal(t, 2, op.Order())

	var zero DiffOp
	assert.True(t, zero.IsZero())
	assert.Equal(t, -1, zero.Order())
	assert.True(t, LinearDiffOp(0, 0).IsZero())
}
