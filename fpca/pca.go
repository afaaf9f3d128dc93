package fpca

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// pcaResult holds the output of the multivariate PCA step: the leading
// right singular directions as rows, their singular values, and the
// fraction of total variance each direction explains.
type pcaResult struct {
	components     *mat.Dense
	singularValues []float64
	varianceRatio  []float64
}

// multivariatePCA runs ordinary PCA on the rows of m and returns the
// leading n directions. The columns of m are mean-centered before the
// factorization, matching the standard multivariate PCA contract, so the
// step behaves identically whether or not the functional centering was
// requested upstream.
func multivariatePCA(m *mat.Dense, n int) (pcaResult, error) {
	r, c := m.Dims()
	centered := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		mean := mat.Sum(m.ColView(j)) / float64(r)
		for i := 0; i < r; i++ {
			centered.Set(i, j, m.At(i, j)-mean)
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return pcaResult{}, ErrSVDConvergence
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v) // c x min(r, c), directions as columns

	components := mat.NewDense(n, c, nil)
	components.Copy(v.Slice(0, c, 0, n).T())

	total := floats.Dot(values, values)
	singular := append([]float64(nil), values[:n]...)
	ratio := make([]float64, n)
	if total > 0 {
		for i, s := range singular {
			ratio[i] = s * s / total
		}
	}
	return pcaResult{
		components:     components,
		singularValues: singular,
		varianceRatio:  ratio,
	}, nil
}
