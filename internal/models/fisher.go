package models

import (
	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/operator"
)

// Fisher is the 1-D Fisher-KPP reaction-diffusion equation
//
//	u_t = D·u_xx + r·u(1 - u)
//
// discretized on a periodic unit-length grid. The diffusion term is the
// time-independent linear operator (a circulant finite-difference
// Laplacian, dense backend); the logistic reaction is the nonlinear
// remainder. Diffusion makes the explicit step-size limit scale with the
// grid squared, which is exactly what the semi-implicit schemes lift.
type Fisher struct {
	n    int
	diff float64
	rate float64
	lin  *operator.Dense
	lx   dynamo.State
}

func NewFisher(n int, diff, rate float64) (*Fisher, error) {
	h := 1.0 / float64(n)
	c := diff / (h * h)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = -2 * c
		data[i*n+(i+1)%n] = c
		data[i*n+(i-1+n)%n] = c
	}
	lin, err := operator.NewDense(n, data)
	if err != nil {
		return nil, err
	}
	return &Fisher{n: n, diff: diff, rate: rate, lin: lin, lx: make(dynamo.State, n)}, nil
}

func (f *Fisher) Dim() int { return f.n }

func (f *Fisher) Field(dst, x dynamo.State, t float64) {
	f.lin.Apply(f.lx, x)
	f.Nonlinear(dst, x, t)
	for i := range dst {
		dst[i] += f.lx[i]
	}
}

func (f *Fisher) Linear() operator.Linear { return f.lin }

func (f *Fisher) Nonlinear(dst, x dynamo.State, _ float64) {
	for i, u := range x {
		dst[i] = f.rate * u * (1 - u)
	}
}

// DefaultState is a localized bump that spreads into the classic
// travelling front.
func (f *Fisher) DefaultState() dynamo.State {
	x := make(dynamo.State, f.n)
	lo, hi := f.n*2/5, f.n*3/5
	for i := lo; i < hi; i++ {
		x[i] = 0.5
	}
	return x
}

func (f *Fisher) GetParams() map[string]float64 {
	return map[string]float64{"diffusion": f.diff, "rate": f.rate}
}
