package fpca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/fdata"
	"github.com/gofda/gofda/utils"
)

// Grid performs functional PCA on samples in discretized grid form. The
// fitted fields are written atomically at the end of Fit; a failed fit
// leaves any previous fitted state intact.
type Grid struct {
	cfg        Config
	weights    []float64
	weightFunc func(points []float64) []float64

	fitted     bool
	components *fdata.Grid
	values     []float64
	ratio      []float64
	mean       *fdata.Grid
	resolved   []float64
}

// GridOption configures a Grid model at construction time.
type GridOption func(*Grid)

// WithWeights supplies an explicit integration weight vector, one weight
// per discretization point, replacing the default trapezoidal rule.
func WithWeights(w []float64) GridOption {
	return func(m *Grid) {
		m.weights = append([]float64(nil), w...)
	}
}

// WithWeightFunc supplies a function evaluated on the grid points at fit
// time to produce the integration weights. It is re-evaluated on every
// fit, so the same model configuration works across different grids.
func WithWeightFunc(f func(points []float64) []float64) GridOption {
	return func(m *Grid) {
		m.weightFunc = f
	}
}

func NewGrid(cfg Config, opts ...GridOption) *Grid {
	m := &Grid{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit computes the principal components of x.
//
// In summary, ordinary multivariate PCA is run over X sqrt(W) / sqrt(N),
// where W is the diagonal integration weight matrix. With Lambda > 0 the
// data is first smoothed by right-multiplication with the inverse of
// I + lambda*Penalty, applied through a linear solve.
func (m *Grid) Fit(x *fdata.Grid) error {
	if x.DomainDim() != 1 {
		return fmt.Errorf("%w: got %d domain axes", ErrUnsupportedDomainDimension, x.DomainDim())
	}
	nSamples := x.NSamples()
	nPoints := x.NPoints()
	if m.cfg.NComponents > nSamples {
		return fmt.Errorf("%w: %d components, %d samples", ErrInsufficientSamples, m.cfg.NComponents, nSamples)
	}
	if m.cfg.NComponents > nPoints {
		return fmt.Errorf("%w: %d components, %d grid points", ErrTooManyComponents, m.cfg.NComponents, nPoints)
	}

	points := x.Points()
	mean := x.Mean()
	data := mat.DenseCopyOf(x.DataMatrix())
	if m.cfg.Centering {
		subtractRow(data, mean.DataMatrix())
	}

	weights, err := resolveWeights(points, m.weights, m.weightFunc)
	if err != nil {
		return err
	}

	if m.cfg.Lambda > 0 {
		pen, err := PenaltyMatrix(points, m.cfg.Penalty)
		if err != nil {
			return err
		}
		// aux = I + lambda * Penalty; the data is right-multiplied by
		// aux^{-1} through the solve aux^T Xreg^T = X^T.
		aux := utils.Eye(nPoints)
		pen.Scale(m.cfg.Lambda, pen)
		aux.Add(aux, pen)
		var regT mat.Dense
		if err := regT.Solve(aux.T(), data.T()); err != nil {
			return fmt.Errorf("%w: %v", ErrSingularRegularizedOperator, err)
		}
		data = mat.DenseCopyOf(regT.T())
	}

	// M = X sqrt(W) / sqrt(N).
	sqrtW := make([]float64, nPoints)
	for k, w := range weights {
		sqrtW[k] = math.Sqrt(w)
	}
	var whitened mat.Dense
	whitened.Mul(data, mat.NewDiagDense(nPoints, sqrtW))
	whitened.Scale(1/math.Sqrt(float64(nSamples)), &whitened)

	pca, err := multivariatePCA(&whitened, m.cfg.NComponents)
	if err != nil {
		return err
	}

	// Un-weight: solve sqrt(W) C^T = V^T rather than dividing, for
	// stability when some weights are near zero.
	var ct mat.Dense
	if err := ct.Solve(mat.NewDiagDense(nPoints, sqrtW), pca.components.T()); err != nil {
		return fmt.Errorf("%w: %v", ErrSingularWeightMatrix, err)
	}
	components, err := x.CopyWithData(mat.DenseCopyOf(ct.T()))
	if err != nil {
		return err
	}

	m.components = components
	m.values = squares(pca.singularValues)
	m.ratio = pca.varianceRatio
	m.mean = mean
	m.resolved = weights
	m.fitted = true
	return nil
}

// Transform projects the samples of x onto the fitted components: the
// data matrix multiplied by the transposed component values, a plain
// discrete dot product along the shared grid. The stored mean is
// subtracted first only when the configuration asks for CenterTransform.
func (m *Grid) Transform(x *fdata.Grid) (*mat.Dense, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if x.DomainDim() != 1 {
		return nil, fmt.Errorf("%w: got %d domain axes", ErrUnsupportedDomainDimension, x.DomainDim())
	}
	if x.NPoints() != m.components.NPoints() {
		return nil, fmt.Errorf("fpca: transform: %w", fdata.ErrDims)
	}
	data := x.DataMatrix()
	if m.cfg.CenterTransform {
		data = mat.DenseCopyOf(data)
		subtractRow(data, m.mean.DataMatrix())
	}
	var scores mat.Dense
	scores.Mul(data, m.components.DataMatrix().T())
	return &scores, nil
}

// FitTransform fits the model and returns the training scores. When
// centering is enabled the scores are those of the centered training
// data, the same data the components were computed from.
func (m *Grid) FitTransform(x *fdata.Grid) (*mat.Dense, error) {
	if err := m.Fit(x); err != nil {
		return nil, err
	}
	data := x.DataMatrix()
	if m.cfg.Centering {
		data = mat.DenseCopyOf(data)
		subtractRow(data, m.mean.DataMatrix())
	}
	var scores mat.Dense
	scores.Mul(data, m.components.DataMatrix().T())
	return &scores, nil
}

// Components returns the fitted principal components in grid form.
func (m *Grid) Components() (*fdata.Grid, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.components, nil
}

// ComponentValues returns the eigenvalues (squared singular values)
// associated with the components, in descending order.
func (m *Grid) ComponentValues() ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.values, nil
}

// ExplainedVarianceRatio returns the fraction of total variance each
// component explains.
func (m *Grid) ExplainedVarianceRatio() ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.ratio, nil
}

// MeanFunction returns the mean function stored at fit time.
func (m *Grid) MeanFunction() (*fdata.Grid, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.mean, nil
}

// Weights returns the integration weights resolved during the last fit.
func (m *Grid) Weights() ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.resolved, nil
}
