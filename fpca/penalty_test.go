package fpca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofda/gofda/fdata"
)

func TestPenaltyMatrix_ZeroOperator(t *testing.T) {
	p, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.LinearDiffOp(0, 0))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, 0.0, p.At(i, j))
		}
	}
}

func TestPenaltyMatrix_OrderZeroIsScaledIdentity(t *testing.T) {
	p, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.LinearDiffOp(3))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 3.0
			}
			assert.InDelta(t, want, p.At(i, j), 1e-15)
		}
	}
}

func TestPenaltyMatrix_FirstOrderUniformGrid(t *testing.T) {
	// On a unit-spaced grid the scaled difference operator has rows
	// (-1, 1), so D^T D is the classic second-difference band matrix.
	p, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.Deriv(1))
	require.NoError(t, err)
	want := [][]float64{
		{1, -1, 0},
		{-1, 2, -1},
		{0, -1, 1},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], p.At(i, j), 1e-12)
		}
	}
}

func TestPenaltyMatrix_MixedOperator(t *testing.T) {
	// c = (1, 2) adds the identity to twice the first-order band.
	p, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.LinearDiffOp(1, 2))
	require.NoError(t, err)
	first, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.Deriv(1))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 2 * first.At(i, j)
			if i == j {
				want++
			}
			assert.InDelta(t, want, p.At(i, j), 1e-12)
		}
	}
}

func TestPenaltyMatrix_SecondOrderShape(t *testing.T) {
	points := []float64{0, 0.5, 1.5, 2, 3}
	p, err := PenaltyMatrix(points, fdata.Deriv(2))
	require.NoError(t, err)
	r, c := p.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 5, c)
	// The penalty is a symmetric PSD quadratic form.
	for i := 0; i < 5; i++ {
		assert.GreaterOrEqual(t, p.At(i, i), 0.0)
		for j := 0; j < 5; j++ {
			assert.InDelta(t, p.At(j, i), p.At(i, j), 1e-12)
		}
	}
	// Constants are annihilated by the difference operator.
	ones := []float64{1, 1, 1, 1, 1}
	for i := 0; i < 5; i++ {
		v := 0.0
		for j := 0; j < 5; j++ {
			v += p.At(i, j) * ones[j]
		}
		assert.InDelta(t, 0.0, v, 1e-12)
	}
}

func TestPenaltyMatrix_OrderTooHigh(t *testing.T) {
	_, err := PenaltyMatrix([]float64{0, 1, 2}, fdata.Deriv(3))
	assert.ErrorIs(t, err, ErrPenaltyOrder)
}

func TestPenaltyMatrix_UnorderedPoints(t *testing.T) {
	_, err := PenaltyMatrix([]float64{0, 2, 1}, fdata.Deriv(1))
	assert.ErrorIs(t, err, fdata.ErrGridPoints)
}
