package fdata

import "math"

// Extrapolation selects how evaluation treats points outside the domain.
type Extrapolation int

const (
	// ExtrapolationNone evaluates out-of-domain points without any
	// control: basis expansions use the raw basis formulas, grids extend
	// their boundary segments linearly.
	ExtrapolationNone Extrapolation = iota
	// ExtrapolationBounds clamps the point to the nearest domain bound.
	ExtrapolationBounds
	// ExtrapolationPeriodic wraps the point back into the domain.
	ExtrapolationPeriodic
	// ExtrapolationZeros yields zero outside the domain.
	ExtrapolationZeros
	// ExtrapolationNaN yields NaN outside the domain.
	ExtrapolationNaN
)

func (e Extrapolation) String() string {
	switch e {
	case ExtrapolationNone:
		return "none"
	case ExtrapolationBounds:
		return "bounds"
	case ExtrapolationPeriodic:
		return "periodic"
	case ExtrapolationZeros:
		return "zeros"
	case ExtrapolationNaN:
		return "nan"
	}
	return "unknown"
}

// apply maps an evaluation point through the strategy. It returns the
// point to evaluate at and, when the strategy overrides the value
// entirely, the override and true.
func (e Extrapolation) apply(x, lo, hi float64) (xx, override float64, overridden bool) {
	if x >= lo && x <= hi {
		return x, 0, false
	}
	switch e {
	case ExtrapolationBounds:
		return math.Min(math.Max(x, lo), hi), 0, false
	case ExtrapolationPeriodic:
		period := hi - lo
		u := math.Mod(x-lo, period)
		if u < 0 {
			u += period
		}
		return lo + u, 0, false
	case ExtrapolationZeros:
		return x, 0, true
	case ExtrapolationNaN:
		return x, math.NaN(), true
	}
	return x, 0, false
}
