package models

import "github.com/evolve-sim/evolve/internal/dynamo"

// VanDerPol is the Van der Pol relaxation oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = mu(1 - x^2)y - x
//
// Large mu makes the system stiff, a convenient stress case for the
// adaptive controller.
type VanDerPol struct {
	mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		mu: 1.0, // classic limit-cycle value
	}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Field(dst, x dynamo.State, _ float64) {
	dst[0] = x[1]
	dst[1] = v.mu*(1-x[0]*x[0])*x[1] - x[0]
}

func (v *VanDerPol) DefaultState() dynamo.State { return dynamo.State{2.0, 0.0} }

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.mu}
}

func (v *VanDerPol) SetParam(name string, value float64) {
	if name == "mu" {
		v.mu = value
	}
}
