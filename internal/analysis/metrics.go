package analysis

import (
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// Metric accumulates a scalar diagnostic over the output points of a run.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Hamiltonian is implemented by models that expose a conserved energy.
type Hamiltonian interface {
	Energy(x dynamo.State) float64
}

// EnergyDrift tracks the worst relative deviation from the initial energy.
// For a conservative system under a good scheme it stays near zero; growth
// signals a step size that is too coarse.
type EnergyDrift struct {
	sys      Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys Hamiltonian) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x dynamo.State, _ float64) {
	energy := e.sys.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Boundedness reports the fraction of output points with every component
// inside a threshold; 1.0 means the trajectory never escaped.
type Boundedness struct {
	threshold  float64
	violations int
	samples    int
}

func NewBoundedness(threshold float64) *Boundedness {
	return &Boundedness{threshold: threshold}
}

func (b *Boundedness) Name() string { return "boundedness" }

func (b *Boundedness) Observe(x dynamo.State, _ float64) {
	b.samples++
	for _, v := range x {
		if math.Abs(v) > b.threshold {
			b.violations++
			break
		}
	}
}

func (b *Boundedness) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Boundedness) Reset() {
	b.violations = 0
	b.samples = 0
}
