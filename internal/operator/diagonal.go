package operator

import (
	"fmt"
	"math"
)

// Diagonal is a linear operator with a purely diagonal spectrum.
// Its propagator is the exact element-wise exponential exp(dt·λᵢ).
type Diagonal struct {
	spectrum []float64
}

// NewDiagonal builds a diagonal operator from its spectrum.
func NewDiagonal(spectrum []float64) (*Diagonal, error) {
	for i, v := range spectrum {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: spectrum[%d]=%v", ErrNonFinite, i, v)
		}
	}
	s := make([]float64, len(spectrum))
	copy(s, spectrum)
	return &Diagonal{spectrum: s}, nil
}

func (d *Diagonal) Dim() int { return len(d.spectrum) }

func (d *Diagonal) Apply(dst, x []float64) {
	for i, v := range d.spectrum {
		dst[i] = v * x[i]
	}
}

func (d *Diagonal) Propagator(dt float64) (Propagator, error) {
	w := make([]float64, len(d.spectrum))
	for i, v := range d.spectrum {
		e := math.Exp(dt * v)
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%w: exp(%v*%v) overflows", ErrNonFinite, dt, v)
		}
		w[i] = e
	}
	return &diagonalPropagator{weights: w}, nil
}

type diagonalPropagator struct {
	weights []float64
}

func (p *diagonalPropagator) Apply(dst, x []float64) {
	for i, w := range p.weights {
		dst[i] = w * x[i]
	}
}
