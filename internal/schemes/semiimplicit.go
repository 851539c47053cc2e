package schemes

import (
	"fmt"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/operator"
)

// SemiImplicitEuler integrates dx/dt = L·x + N(x,t) in integrating-factor
// form: x' = P(dt)·(x + dt·N(x,t)) with P the exact linear propagator.
// On a pure-linear system (N ≡ 0) every step reproduces P exactly.
type SemiImplicitEuler struct {
	model dynamo.SplitModel
	dt    float64
	prop  operator.Propagator
	nx    dynamo.State
	sx    dynamo.State
}

func NewSemiImplicitEuler(model dynamo.Model, proto dynamo.State, dt float64) (*SemiImplicitEuler, error) {
	split, err := checkSplit(model, proto, dt)
	if err != nil {
		return nil, err
	}
	prop, err := split.Linear().Propagator(dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrPropagator, err)
	}
	n := len(proto)
	return &SemiImplicitEuler{
		model: split,
		dt:    dt,
		prop:  prop,
		nx:    make(dynamo.State, n),
		sx:    make(dynamo.State, n),
	}, nil
}

func (s *SemiImplicitEuler) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	n := len(s.nx)
	if len(x) != n {
		return nil, t, fmt.Errorf("%w: state %d, scratch %d", dynamo.ErrDimensionMismatch, len(x), n)
	}
	s.model.Nonlinear(s.nx, x, t)
	for i := 0; i < n; i++ {
		s.sx[i] = x[i] + s.dt*s.nx[i]
	}
	out := make(dynamo.State, n)
	s.prop.Apply(out, s.sx)
	return out, t + s.dt, nil
}

func (s *SemiImplicitEuler) StepSize() float64 { return s.dt }

// SetStepSize rebuilds the cached propagator; L is fixed for the run, so
// the propagator only ever changes with dt.
func (s *SemiImplicitEuler) SetStepSize(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	prop, err := s.model.Linear().Propagator(dt)
	if err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrPropagator, err)
	}
	s.dt = dt
	s.prop = prop
	return nil
}

// SemiImplicitRK4 is the four-stage integrating-factor (Lawson) scheme:
// the nonlinear term goes through the classical RK4 staging while the
// linear term is advanced by exact propagators over dt/2 and dt.
//
//	k1 = N(x, t)
//	k2 = N(E·(x + dt/2·k1), t + dt/2)         E  = P(dt/2)
//	k3 = N(E·x + dt/2·k2, t + dt/2)
//	k4 = N(E²·x + dt·E·k3, t + dt)            E² = P(dt)
//	x' = E²·x + dt/6·(E²·k1 + 2E·k2 + 2E·k3 + k4)
type SemiImplicitRK4 struct {
	model dynamo.SplitModel
	dt    float64
	half  operator.Propagator
	full  operator.Propagator

	k1, k2, k3, k4 dynamo.State
	xs, ex, e2x    dynamo.State
	pk             dynamo.State
}

func NewSemiImplicitRK4(model dynamo.Model, proto dynamo.State, dt float64) (*SemiImplicitRK4, error) {
	split, err := checkSplit(model, proto, dt)
	if err != nil {
		return nil, err
	}
	s := &SemiImplicitRK4{model: split, dt: dt}
	if err := s.buildPropagators(dt); err != nil {
		return nil, err
	}
	n := len(proto)
	for _, buf := range []*dynamo.State{&s.k1, &s.k2, &s.k3, &s.k4, &s.xs, &s.ex, &s.e2x, &s.pk} {
		*buf = make(dynamo.State, n)
	}
	return s, nil
}

func (s *SemiImplicitRK4) buildPropagators(dt float64) error {
	lin := s.model.Linear()
	half, err := lin.Propagator(dt / 2)
	if err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrPropagator, err)
	}
	full, err := lin.Propagator(dt)
	if err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrPropagator, err)
	}
	s.half, s.full = half, full
	return nil
}

func (s *SemiImplicitRK4) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	n := len(s.xs)
	if len(x) != n {
		return nil, t, fmt.Errorf("%w: state %d, scratch %d", dynamo.ErrDimensionMismatch, len(x), n)
	}
	dt := s.dt

	s.model.Nonlinear(s.k1, x, t)

	for i := 0; i < n; i++ {
		s.xs[i] = x[i] + 0.5*dt*s.k1[i]
	}
	s.half.Apply(s.pk, s.xs)
	s.model.Nonlinear(s.k2, s.pk, t+0.5*dt)

	s.half.Apply(s.ex, x)
	for i := 0; i < n; i++ {
		s.xs[i] = s.ex[i] + 0.5*dt*s.k2[i]
	}
	s.model.Nonlinear(s.k3, s.xs, t+0.5*dt)

	s.full.Apply(s.e2x, x)
	s.half.Apply(s.pk, s.k3)
	for i := 0; i < n; i++ {
		s.xs[i] = s.e2x[i] + dt*s.pk[i]
	}
	s.model.Nonlinear(s.k4, s.xs, t+dt)

	out := make(dynamo.State, n)
	s.full.Apply(s.xs, s.k1)
	for i := 0; i < n; i++ {
		out[i] = s.e2x[i] + dt/6.0*s.xs[i]
	}
	s.half.Apply(s.xs, s.k2)
	for i := 0; i < n; i++ {
		out[i] += dt / 3.0 * s.xs[i]
	}
	s.half.Apply(s.xs, s.k3)
	for i := 0; i < n; i++ {
		out[i] += dt/3.0*s.xs[i] + dt/6.0*s.k4[i]
	}
	return out, t + dt, nil
}

func (s *SemiImplicitRK4) StepSize() float64 { return s.dt }

// SetStepSize rebuilds both cached propagators for the new step size.
func (s *SemiImplicitRK4) SetStepSize(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	if err := s.buildPropagators(dt); err != nil {
		return err
	}
	s.dt = dt
	return nil
}

func checkSplit(model dynamo.Model, proto dynamo.State, dt float64) (dynamo.SplitModel, error) {
	if err := checkFixed(model, proto, dt); err != nil {
		return nil, err
	}
	split, ok := model.(dynamo.SplitModel)
	if !ok {
		return nil, fmt.Errorf("%w: %T", dynamo.ErrNotSplit, model)
	}
	if split.Linear().Dim() != model.Dim() {
		return nil, fmt.Errorf("%w: operator %d, model %d", dynamo.ErrDimensionMismatch, split.Linear().Dim(), model.Dim())
	}
	return split, nil
}
