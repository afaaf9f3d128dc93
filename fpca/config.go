// Package fpca implements functional principal component analysis for
// samples in basis form and in discretized grid form. Both variants
// center the data, regularize and factor an inner-product structure,
// whiten, delegate to an ordinary multivariate PCA and map the resulting
// directions back into the original representation.
package fpca

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/fdata"
)

// Config carries the settings shared by both FPCA variants. It is a
// plain value: fitting never writes derived quantities back into it.
type Config struct {
	// NComponents is the number of principal components to compute.
	NComponents int
	// Centering subtracts the sample mean function before fitting.
	Centering bool
	// CenterTransform subtracts the mean stored at fit time from new
	// data in Transform. Off by default: scores are then computed on the
	// raw inputs, matching the classical behavior where only fit centers.
	CenterTransform bool
	// Lambda is the regularization parameter; zero disables the penalty
	// entirely.
	Lambda float64
	// Penalty is the differential operator inducing the roughness
	// penalty when Lambda > 0.
	Penalty fdata.DiffOp
}

// DefaultConfig returns three centered, unregularized components with a
// second-derivative penalty operator on standby.
func DefaultConfig() Config {
	return Config{
		NComponents: 3,
		Centering:   true,
		Penalty:     fdata.Deriv(2),
	}
}

// Model is the capability shared by the two FPCA variants over their
// respective representation type.
type Model[T any] interface {
	// Fit computes the principal components of x and stores them.
	Fit(x T) error
	// Transform projects the samples of x onto the fitted components,
	// returning an NSamples x NComponents score matrix.
	Transform(x T) (*mat.Dense, error)
	// FitTransform fits and returns the training scores.
	FitTransform(x T) (*mat.Dense, error)
}

var (
	_ Model[*fdata.BasisExpansion] = (*Basis)(nil)
	_ Model[*fdata.Grid]           = (*Grid)(nil)
)
