package dynamo

import (
	"math"

	"github.com/evolve-sim/evolve/internal/operator"
)

// State is the numeric container advanced by a scheme. All arithmetic is
// element-wise and closed over a fixed shape for the lifetime of a run.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether the state is free of NaN and Inf entries.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm, used for error estimates.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// Model computes the vector field f(x, t) of a first-order system.
// Field writes into dst so that schemes can keep an allocate-once
// scratch discipline; dst and x must both have length Dim.
type Model interface {
	Dim() int
	Field(dst, x State, t float64)
}

// SplitModel decomposes the field as f(x, t) = L·x + N(x, t) with a
// time-independent linear operator L, enabling semi-implicit schemes.
// The decomposition must hold for every reachable (x, t).
type SplitModel interface {
	Model
	Linear() operator.Linear
	Nonlinear(dst, x State, t float64)
}

// Scheme advances the state by exactly one committed step and returns the
// new state and time. Rejected attempts inside adaptive schemes are
// internal and never observable through Step. Schemes mutate only their
// private scratch; the input state is left untouched.
type Scheme interface {
	Step(x State, t float64) (State, float64, error)
}

// StepSizer is implemented by schemes whose step size can be inspected
// and changed between steps. Changing the step size of a semi-implicit
// scheme invalidates and rebuilds its cached propagators.
type StepSizer interface {
	StepSize() float64
	SetStepSize(dt float64) error
}
