package models

import (
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// DoublePendulum is the undriven double pendulum, chaotic at large
// amplitudes. State: [theta1, theta2, omega1, omega2].
type DoublePendulum struct {
	m1, m2  float64
	l1, l2  float64
	gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		m1: 1.0, m2: 1.0,
		l1: 1.0, l2: 1.0,
		gravity: 9.81,
	}
}

func (d *DoublePendulum) Dim() int { return 4 }

func (d *DoublePendulum) Field(dst, x dynamo.State, _ float64) {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.m1, d.m2, d.l1, d.l2, d.gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	dst[0] = omega1
	dst[1] = omega2
	dst[2] = (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)) / den1
	dst[3] = (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2
}

func (d *DoublePendulum) DefaultState() dynamo.State {
	return dynamo.State{math.Pi / 2, math.Pi / 2, 0.0, 0.0}
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": d.m1, "m2": d.m2,
		"l1": d.l1, "l2": d.l2,
		"gravity": d.gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, v float64) {
	switch name {
	case "m1":
		d.m1 = v
	case "m2":
		d.m2 = v
	case "l1":
		d.l1 = v
	case "l2":
		d.l2 = v
	case "gravity":
		d.gravity = v
	}
}

// Energy is the total mechanical energy of the two bobs.
func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.m1, d.m2, d.l1, d.l2, d.gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := l1*l1*omega1*omega1 + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}
