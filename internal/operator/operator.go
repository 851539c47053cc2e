// Package operator provides the linear-algebra backend contract consumed by
// the semi-implicit schemes: application of a time-independent linear
// operator to a state vector and construction of one-step propagators
// exp(dt·L). Three backends are provided: diagonal spectra, dense matrices
// (gonum) and circulant operators diagonal in Fourier space (go-dsp).
package operator

import "errors"

var (
	// ErrSingular indicates the propagator linear solve failed
	// (singular or severely ill-conditioned operator).
	ErrSingular = errors.New("operator: singular propagator solve")

	// ErrNonFinite indicates NaN or Inf entries in the operator or in a
	// constructed propagator.
	ErrNonFinite = errors.New("operator: non-finite operator entries")
)

// Linear is a time-independent linear operator L acting on state vectors.
type Linear interface {
	Dim() int

	// Apply writes L·x into dst. dst and x must have length Dim.
	Apply(dst, x []float64)

	// Propagator builds the one-step linear propagator exp(dt·L).
	// Implementations must reject operators for which the propagator
	// cannot be represented in finite arithmetic.
	Propagator(dt float64) (Propagator, error)
}

// Propagator advances the linear sub-problem over one fixed step.
type Propagator interface {
	// Apply writes exp(dt·L)·x into dst.
	Apply(dst, x []float64)
}
