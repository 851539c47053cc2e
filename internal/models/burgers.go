package models

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/operator"
)

// Burgers is the 1-D viscous Burgers equation
//
//	u_t = nu·u_xx - u·u_x
//
// on the periodic domain [0, 2π), treated pseudo-spectrally: diffusion is
// a spectral linear operator (symbol -nu·k²) and advection is evaluated
// through an FFT derivative. The grid size should be a power of two.
type Burgers struct {
	n   int
	nu  float64
	lin *operator.Spectral
	ik  []complex128
	lx  dynamo.State
}

func NewBurgers(n int, nu float64) (*Burgers, error) {
	symbol := make([]complex128, n)
	ik := make([]complex128, n)
	for j := 0; j < n; j++ {
		k := j
		if j > n/2 {
			k = j - n
		}
		symbol[j] = complex(-nu*float64(k)*float64(k), 0)
		if j == n/2 {
			// The Nyquist mode has no well-defined odd derivative.
			ik[j] = 0
		} else {
			ik[j] = complex(0, float64(k))
		}
	}
	lin, err := operator.NewSpectral(symbol)
	if err != nil {
		return nil, err
	}
	return &Burgers{n: n, nu: nu, lin: lin, ik: ik, lx: make(dynamo.State, n)}, nil
}

func (b *Burgers) Dim() int { return b.n }

func (b *Burgers) Field(dst, x dynamo.State, t float64) {
	b.lin.Apply(b.lx, x)
	b.Nonlinear(dst, x, t)
	for i := range dst {
		dst[i] += b.lx[i]
	}
}

func (b *Burgers) Linear() operator.Linear { return b.lin }

// Nonlinear evaluates the advection term -u·u_x with a spectral
// derivative.
func (b *Burgers) Nonlinear(dst, x dynamo.State, _ float64) {
	spec := fft.FFTReal(x)
	for k := range spec {
		spec[k] *= b.ik[k]
	}
	ux := fft.IFFT(spec)
	for i := range dst {
		dst[i] = -x[i] * real(ux[i])
	}
}

// DefaultState is a single sine mode, which steepens into the classic
// sawtooth before viscosity dissipates it.
func (b *Burgers) DefaultState() dynamo.State {
	x := make(dynamo.State, b.n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / float64(b.n))
	}
	return x
}

func (b *Burgers) GetParams() map[string]float64 {
	return map[string]float64{"nu": b.nu}
}
