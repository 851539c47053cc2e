package models

import (
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// Duffing is the periodically forced Duffing oscillator
//
//	x'' + δx' + αx + βx³ = γ·cos(ωt)
//
// one of the few catalog systems with an explicitly time-dependent field.
// State: [x, v].
type Duffing struct {
	alpha, beta, delta, gamma, omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{alpha: -1.0, beta: 1.0, delta: 0.3, gamma: 0.5, omega: 1.2}
}

func (d *Duffing) Dim() int { return 2 }

func (d *Duffing) Field(dst, x dynamo.State, t float64) {
	dst[0] = x[1]
	dst[1] = -d.delta*x[1] - d.alpha*x[0] - d.beta*x[0]*x[0]*x[0] +
		d.gamma*math.Cos(d.omega*t)
}

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

// Energy is the unforced, undamped part of the Hamiltonian.
func (d *Duffing) Energy(x dynamo.State) float64 {
	q, v := x[0], x[1]
	return 0.5*v*v + 0.5*d.alpha*q*q + 0.25*d.beta*q*q*q*q
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha": d.alpha, "beta": d.beta, "delta": d.delta,
		"gamma": d.gamma, "omega": d.omega,
	}
}

func (d *Duffing) SetParam(n string, v float64) {
	switch n {
	case "alpha":
		d.alpha = v
	case "beta":
		d.beta = v
	case "delta":
		d.delta = v
	case "gamma":
		d.gamma = v
	case "omega":
		d.omega = v
	}
}
