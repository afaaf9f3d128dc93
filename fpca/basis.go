package fpca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/fdata"
)

// Basis performs functional PCA on samples in basis form. The fitted
// fields are written atomically at the end of Fit; a failed fit leaves
// any previous fitted state intact.
type Basis struct {
	cfg             Config
	componentsBasis fdata.Basis

	fitted     bool
	components *fdata.BasisExpansion
	values     []float64
	ratio      []float64
	mean       *fdata.BasisExpansion
}

// BasisOption configures a Basis model at construction time.
type BasisOption func(*Basis)

// WithComponentsBasis expresses the principal components over a basis
// different from the one carried by the input samples. Its domain is
// forced to the input's domain at fit time.
func WithComponentsBasis(b fdata.Basis) BasisOption {
	return func(m *Basis) {
		m.componentsBasis = b.Copy()
	}
}

func NewBasis(cfg Config, opts ...BasisOption) *Basis {
	m := &Basis{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit computes the principal components of x.
//
// The computation follows the basis-expansion recipe: with Gram matrix G
// of the target basis and cross inner products J between the input and
// target bases, factor G = L L^T, whiten the coefficients through
// L^{-1} J^T, run multivariate PCA in the whitened space and recover the
// component coefficients by solving L^T C = V^T.
func (m *Basis) Fit(x *fdata.BasisExpansion) error {
	nSamples := x.NSamples()
	nBasis := x.Basis().NBasis()
	if m.componentsBasis != nil {
		nBasis = m.componentsBasis.NBasis()
	}
	if m.cfg.NComponents > nSamples {
		return fmt.Errorf("%w: %d components, %d samples", ErrInsufficientSamples, m.cfg.NComponents, nSamples)
	}
	if m.cfg.NComponents > nBasis {
		return fmt.Errorf("%w: %d components, %d basis functions", ErrTooManyComponents, m.cfg.NComponents, nBasis)
	}

	mean := x.Mean()
	coefs := mat.DenseCopyOf(x.Coefficients())
	if m.cfg.Centering {
		subtractRow(coefs, mean.Coefficients())
	}

	// Resolve the target basis, its Gram matrix and the cross
	// inner-product matrix J between the input and target bases.
	var target fdata.Basis
	var g, j *mat.Dense
	if m.componentsBasis != nil {
		lo, hi := x.Basis().DomainRange()
		target = m.componentsBasis.WithDomain(lo, hi)
		g = target.GramMatrix()
		var err error
		if j, err = x.Basis().InnerProduct(target); err != nil {
			return err
		}
	} else {
		target = x.Basis().Copy()
		g = target.GramMatrix()
		j = g
	}

	// G = (G + G^T) / 2, guarding against asymmetric quadrature error.
	sym := symmetrize(g)
	if m.cfg.Lambda > 0 {
		pen, err := target.Penalty(m.cfg.Penalty)
		if err != nil {
			return err
		}
		penSym := symmetrize(pen)
		for i := 0; i < nBasis; i++ {
			for k := i; k < nBasis; k++ {
				sym.SetSym(i, k, sym.At(i, k)+m.cfg.Lambda*penSym.At(i, k))
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return ErrNonPositiveDefiniteGram
	}
	var l mat.TriDense
	chol.LTo(&l)

	// Z = L^{-1} J^T via a lower-triangular solve.
	z := mat.DenseCopyOf(j.T())
	if ok := lapack64.Trtrs(blas.NoTrans, l.RawTriangular(), z.RawMatrix()); !ok {
		return ErrNonPositiveDefiniteGram
	}

	// M = X Z^T / sqrt(N), the whitened data matrix.
	var whitened mat.Dense
	whitened.Mul(coefs, z.T())
	whitened.Scale(1/math.Sqrt(float64(nSamples)), &whitened)

	pca, err := multivariatePCA(&whitened, m.cfg.NComponents)
	if err != nil {
		return err
	}

	// Un-whiten: solve L^T C = V^T to express the directions as
	// coefficients over the target basis.
	ct := mat.DenseCopyOf(pca.components.T())
	if ok := lapack64.Trtrs(blas.Trans, l.RawTriangular(), ct.RawMatrix()); !ok {
		return ErrNonPositiveDefiniteGram
	}
	components, err := fdata.NewBasisExpansion(mat.DenseCopyOf(ct.T()), target)
	if err != nil {
		return err
	}

	m.components = components
	m.values = squares(pca.singularValues)
	m.ratio = pca.varianceRatio
	m.mean = mean
	m.fitted = true
	return nil
}

// Transform projects the samples of x onto the fitted components,
// returning the matrix of inner products between each sample and each
// component. The stored mean is subtracted first only when the
// configuration asks for CenterTransform.
func (m *Basis) Transform(x *fdata.BasisExpansion) (*mat.Dense, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if m.cfg.CenterTransform {
		_, b := x.Coefficients().Dims()
		_, bm := m.mean.Coefficients().Dims()
		if b != bm {
			return nil, fmt.Errorf("fpca: transform centering: %w", fdata.ErrCoefDims)
		}
		coefs := mat.DenseCopyOf(x.Coefficients())
		subtractRow(coefs, m.mean.Coefficients())
		centered, err := x.CopyWithCoefs(coefs)
		if err != nil {
			return nil, err
		}
		x = centered
	}
	return x.InnerProduct(m.components)
}

// FitTransform fits the model and returns the training scores. When
// centering is enabled the scores are those of the centered training
// data, the same data the components were computed from.
func (m *Basis) FitTransform(x *fdata.BasisExpansion) (*mat.Dense, error) {
	if err := m.Fit(x); err != nil {
		return nil, err
	}
	if m.cfg.Centering {
		coefs := mat.DenseCopyOf(x.Coefficients())
		subtractRow(coefs, m.mean.Coefficients())
		centered, err := x.CopyWithCoefs(coefs)
		if err != nil {
			return nil, err
		}
		return centered.InnerProduct(m.components)
	}
	return x.InnerProduct(m.components)
}

// Components returns the fitted principal components in basis form.
func (m *Basis) Components() (*fdata.BasisExpansion, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.components, nil
}

// ComponentValues returns the eigenvalues (squared singular values)
// associated with the components, in descending order.
func (m *Basis) ComponentValues() ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.values, nil
}

// ExplainedVarianceRatio returns the fraction of total variance each
// component explains.
func (m *Basis) ExplainedVarianceRatio() ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.ratio, nil
}

// MeanFunction returns the mean function stored at fit time.
func (m *Basis) MeanFunction() (*fdata.BasisExpansion, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.mean, nil
}

// subtractRow subtracts the single row of row from every row of dst.
func subtractRow(dst, row *mat.Dense) {
	n, p := dst.Dims()
	for i := 0; i < n; i++ {
		for k := 0; k < p; k++ {
			dst.Set(i, k, dst.At(i, k)-row.At(0, k))
		}
	}
}

// symmetrize returns (a + a^T) / 2 as a symmetric matrix.
func symmetrize(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for k := i; k < n; k++ {
			out.SetSym(i, k, (a.At(i, k)+a.At(k, i))/2)
		}
	}
	return out
}

// squares maps singular values to eigenvalues.
func squares(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * x
	}
	return out
}
