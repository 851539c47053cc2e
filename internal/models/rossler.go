package models

import "github.com/evolve-sim/evolve/internal/dynamo"

// Rossler is the Rössler attractor, chaotic for the default parameters.
type Rossler struct{ a, b, c float64 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

func (r *Rossler) Dim() int { return 3 }

func (r *Rossler) Field(dst, x dynamo.State, _ float64) {
	dst[0] = -x[1] - x[2]
	dst[1] = x[0] + r.a*x[1]
	dst[2] = r.b + x[2]*(x[0]-r.c)
}

func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.a, "b": r.b, "c": r.c}
}

func (r *Rossler) SetParam(n string, v float64) {
	switch n {
	case "a":
		r.a = v
	case "b":
		r.b = v
	case "c":
		r.c = v
	}
}
