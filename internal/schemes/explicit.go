package schemes

import (
	"fmt"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// Euler is the fixed-step forward Euler scheme:
// x' = x + dt·f(x, t). One field evaluation per step.
type Euler struct {
	model dynamo.Model
	dt    float64
	dx    dynamo.State
}

func NewEuler(model dynamo.Model, proto dynamo.State, dt float64) (*Euler, error) {
	if err := checkFixed(model, proto, dt); err != nil {
		return nil, err
	}
	return &Euler{model: model, dt: dt, dx: make(dynamo.State, len(proto))}, nil
}

func (e *Euler) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	if len(x) != len(e.dx) {
		return nil, t, fmt.Errorf("%w: state %d, scratch %d", dynamo.ErrDimensionMismatch, len(x), len(e.dx))
	}
	e.model.Field(e.dx, x, t)
	out := make(dynamo.State, len(x))
	for i := range x {
		out[i] = x[i] + e.dt*e.dx[i]
	}
	return out, t + e.dt, nil
}

func (e *Euler) StepSize() float64 { return e.dt }

func (e *Euler) SetStepSize(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	e.dt = dt
	return nil
}

// RK4 is the classical fixed-step fourth-order Runge-Kutta scheme.
// Stage buffers are overwritten each call; nothing carries over between
// steps.
type RK4 struct {
	model          dynamo.Model
	dt             float64
	k1, k2, k3, k4 dynamo.State
	xs             dynamo.State
}

func NewRK4(model dynamo.Model, proto dynamo.State, dt float64) (*RK4, error) {
	if err := checkFixed(model, proto, dt); err != nil {
		return nil, err
	}
	n := len(proto)
	return &RK4{
		model: model,
		dt:    dt,
		k1:    make(dynamo.State, n),
		k2:    make(dynamo.State, n),
		k3:    make(dynamo.State, n),
		k4:    make(dynamo.State, n),
		xs:    make(dynamo.State, n),
	}, nil
}

func (r *RK4) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	n := len(r.xs)
	if len(x) != n {
		return nil, t, fmt.Errorf("%w: state %d, scratch %d", dynamo.ErrDimensionMismatch, len(x), n)
	}
	dt := r.dt

	r.model.Field(r.k1, x, t)

	for i := 0; i < n; i++ {
		r.xs[i] = x[i] + 0.5*dt*r.k1[i]
	}
	r.model.Field(r.k2, r.xs, t+0.5*dt)

	for i := 0; i < n; i++ {
		r.xs[i] = x[i] + 0.5*dt*r.k2[i]
	}
	r.model.Field(r.k3, r.xs, t+0.5*dt)

	for i := 0; i < n; i++ {
		r.xs[i] = x[i] + dt*r.k3[i]
	}
	r.model.Field(r.k4, r.xs, t+dt)

	out := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out, t + dt, nil
}

func (r *RK4) StepSize() float64 { return r.dt }

func (r *RK4) SetStepSize(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	r.dt = dt
	return nil
}

func checkFixed(model dynamo.Model, proto dynamo.State, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	if len(proto) != model.Dim() {
		return fmt.Errorf("%w: prototype %d, model %d", dynamo.ErrDimensionMismatch, len(proto), model.Dim())
	}
	return nil
}
