package models

import "github.com/evolve-sim/evolve/internal/dynamo"

// Lorenz is the classic three-variable chaotic system.
type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Dim() int { return 3 }

func (l *Lorenz) Field(dst, x dynamo.State, _ float64) {
	dst[0] = l.sigma * (x[1] - x[0])
	dst[1] = x[0]*(l.rho-x[2]) - x[1]
	dst[2] = x[0]*x[1] - l.beta*x[2]
}

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(name string, v float64) {
	switch name {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	}
}
