package fpca

import "errors"

var (
	// ErrInsufficientSamples indicates more requested components than
	// samples in the training set.
	ErrInsufficientSamples = errors.New("fpca: number of components exceeds the sample count")
	// ErrTooManyComponents indicates more requested components than the
	// dimension of the target basis or the number of grid points.
	ErrTooManyComponents = errors.New("fpca: number of components exceeds the representation dimension")
	// ErrUnsupportedDomainDimension indicates grid input over a domain
	// that is not one-dimensional.
	ErrUnsupportedDomainDimension = errors.New("fpca: only one-dimensional domains are supported")
	// ErrInvalidWeight indicates a negative integration weight.
	ErrInvalidWeight = errors.New("fpca: integration weights must be non-negative")
	// ErrSingularWeightMatrix indicates an integration weight of exactly
	// zero where a square root or solve requires strict positivity.
	ErrSingularWeightMatrix = errors.New("fpca: zero integration weight makes the weight matrix singular")
	// ErrNonPositiveDefiniteGram indicates that the Cholesky factorization
	// of the regularized Gram matrix failed.
	ErrNonPositiveDefiniteGram = errors.New("fpca: regularized Gram matrix is not positive definite")
	// ErrSingularRegularizedOperator indicates that the grid operator
	// I + lambda*Penalty is singular under the requested solve.
	ErrSingularRegularizedOperator = errors.New("fpca: regularized operator is singular")
	// ErrPenaltyOrder indicates a differential operator of order too high
	// for the number of grid points.
	ErrPenaltyOrder = errors.New("fpca: differential operator order must be smaller than the number of sample points")
	// ErrNotFitted indicates use of a model before a successful Fit.
	ErrNotFitted = errors.New("fpca: model has not been fitted")
	// ErrSVDConvergence indicates that the SVD backing the multivariate
	// PCA step failed to converge.
	ErrSVDConvergence = errors.New("fpca: svd failed to converge")
)
