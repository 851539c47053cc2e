package models

import (
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// Pendulum is a damped planar pendulum. State: [theta, omega].
type Pendulum struct {
	mass    float64
	length  float64
	damping float64
	gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		mass:    1.0,
		length:  1.0,
		damping: 0.1,
		gravity: 9.81,
	}
}

func (p *Pendulum) Dim() int { return 2 }

func (p *Pendulum) Field(dst, x dynamo.State, _ float64) {
	theta, omega := x[0], x[1]
	dst[0] = omega
	dst[1] = -(p.gravity/p.length)*math.Sin(theta) -
		(p.damping/(p.mass*p.length*p.length))*omega
}

func (p *Pendulum) DefaultState() dynamo.State { return dynamo.State{math.Pi / 4, 0.0} }

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.mass,
		"length":  p.length,
		"damping": p.damping,
		"gravity": p.gravity,
	}
}

func (p *Pendulum) SetParam(name string, v float64) {
	switch name {
	case "mass":
		p.mass = v
	case "length":
		p.length = v
	case "damping":
		p.damping = v
	case "gravity":
		p.gravity = v
	}
}

// Energy is the total mechanical energy, conserved when damping is zero.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	theta, omega := x[0], x[1]
	ke := 0.5 * p.mass * p.length * p.length * omega * omega
	pe := p.mass * p.gravity * p.length * (1 - math.Cos(theta))
	return ke + pe
}
