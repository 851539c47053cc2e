package operator

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectral is a circulant linear operator diagonal in Fourier space,
// defined by its symbol over the full FFT wavenumber grid. Applying it
// transforms to Fourier space, multiplies by the symbol and transforms
// back; the propagator multiplies by exp(dt·symbol_k) instead.
type Spectral struct {
	symbol []complex128
}

// NewSpectral builds a spectral operator from its Fourier symbol.
// The symbol length fixes the grid size, which should be a power of two
// for the FFT backend to be fast.
func NewSpectral(symbol []complex128) (*Spectral, error) {
	for k, v := range symbol {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, fmt.Errorf("%w: symbol[%d]=%v", ErrNonFinite, k, v)
		}
	}
	s := make([]complex128, len(symbol))
	copy(s, symbol)
	return &Spectral{symbol: s}, nil
}

func (s *Spectral) Dim() int { return len(s.symbol) }

func (s *Spectral) Apply(dst, x []float64) {
	applySymbol(dst, x, s.symbol)
}

func (s *Spectral) Propagator(dt float64) (Propagator, error) {
	mult := make([]complex128, len(s.symbol))
	for k, v := range s.symbol {
		e := cmplx.Exp(complex(dt, 0) * v)
		if cmplx.IsNaN(e) || cmplx.IsInf(e) {
			return nil, fmt.Errorf("%w: exp(dt*symbol[%d]) overflows", ErrNonFinite, k)
		}
		mult[k] = e
	}
	return &spectralPropagator{mult: mult}, nil
}

type spectralPropagator struct {
	mult []complex128
}

func (p *spectralPropagator) Apply(dst, x []float64) {
	applySymbol(dst, x, p.mult)
}

func applySymbol(dst, x []float64, sym []complex128) {
	spec := fft.FFTReal(x)
	for k := range spec {
		spec[k] *= sym[k]
	}
	phys := fft.IFFT(spec)
	for i := range dst {
		dst[i] = real(phys[i])
	}
}
