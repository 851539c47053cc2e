package models

import (
	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/operator"
)

// Oscillator is the damped harmonic oscillator u'' + 2ζω u' + ω²u = 0
// written as a first-order split system with a dense linear operator and
// a vanishing nonlinear remainder. It isolates the linear path of the
// semi-implicit schemes: every step must reproduce the propagator exactly.
type Oscillator struct {
	omega, zeta float64
	lin         *operator.Dense
}

func NewOscillator(omega, zeta float64) (*Oscillator, error) {
	lin, err := operator.NewDense(2, []float64{
		0, 1,
		-omega * omega, -2 * zeta * omega,
	})
	if err != nil {
		return nil, err
	}
	return &Oscillator{omega: omega, zeta: zeta, lin: lin}, nil
}

func (o *Oscillator) Dim() int { return 2 }

func (o *Oscillator) Field(dst, x dynamo.State, _ float64) {
	o.lin.Apply(dst, x)
}

func (o *Oscillator) Linear() operator.Linear { return o.lin }

func (o *Oscillator) Nonlinear(dst, _ dynamo.State, _ float64) {
	for i := range dst {
		dst[i] = 0
	}
}

func (o *Oscillator) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"omega": o.omega, "zeta": o.zeta}
}
