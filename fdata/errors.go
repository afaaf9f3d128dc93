package fdata

import "errors"

var (
	// ErrDomain indicates an empty or inverted domain interval.
	ErrDomain = errors.New("fdata: domain bounds must satisfy lo < hi")
	// ErrBasisSize indicates a basis with no functions.
	ErrBasisSize = errors.New("fdata: basis must contain at least one function")
	// ErrGridPoints indicates unordered or duplicated sample points.
	ErrGridPoints = errors.New("fdata: sample points must be strictly increasing")
	// ErrDims indicates a data matrix that does not match the grid.
	ErrDims = errors.New("fdata: data matrix shape does not match the sample points")
	// ErrCoefDims indicates a coefficient matrix that does not match the basis.
	ErrCoefDims = errors.New("fdata: coefficient matrix shape does not match the basis dimension")
	// ErrDomainMismatch indicates an inner product between bases over
	// different domains.
	ErrDomainMismatch = errors.New("fdata: bases are defined over different domains")
)
