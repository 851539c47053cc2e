package schemes

import (
	"errors"
	"math"
	"testing"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// decay is dx/dt = -x, the classic scheme-verification system.
type decay struct{}

func (decay) Dim() int { return 1 }

func (decay) Field(dst, x dynamo.State, _ float64) {
	dst[0] = -x[0]
}

// harmonic is the undamped oscillator, used for energy-drift checks.
type harmonic struct{}

func (harmonic) Dim() int { return 2 }

func (harmonic) Field(dst, x dynamo.State, _ float64) {
	dst[0] = x[1]
	dst[1] = -x[0]
}

func energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestEuler_ExactDecayLaw(t *testing.T) {
	const (
		dt = 0.1
		n  = 100
	)
	s, err := NewEuler(decay{}, dynamo.State{1.0}, dt)
	if err != nil {
		t.Fatal(err)
	}

	x := dynamo.State{1.0}
	tm := 0.0
	for i := 0; i < n; i++ {
		x, tm, err = s.Step(x, tm)
		if err != nil {
			t.Fatal(err)
		}
		want := math.Pow(1-dt, float64(i+1))
		if diff := math.Abs(x[0] - want); diff > 1e-12 {
			t.Fatalf("step %d: got %v, want (1-dt)^n = %v (diff %e)", i+1, x[0], want, diff)
		}
	}
	if math.Abs(tm-float64(n)*dt) > 1e-9 {
		t.Errorf("time after %d steps: got %v, want %v", n, tm, float64(n)*dt)
	}
}

func TestEuler_ConfigErrors(t *testing.T) {
	if _, err := NewEuler(decay{}, dynamo.State{1.0}, 0); !errors.Is(err, dynamo.ErrStepSize) {
		t.Errorf("dt=0: got %v, want ErrStepSize", err)
	}
	if _, err := NewEuler(decay{}, dynamo.State{1.0}, -0.1); !errors.Is(err, dynamo.ErrStepSize) {
		t.Errorf("dt<0: got %v, want ErrStepSize", err)
	}
	if _, err := NewEuler(decay{}, dynamo.State{1.0, 2.0}, 0.1); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("bad prototype: got %v, want ErrDimensionMismatch", err)
	}

	s, err := NewEuler(decay{}, dynamo.State{1.0}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Step(dynamo.State{1.0, 2.0}, 0); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("bad runtime state: got %v, want ErrDimensionMismatch", err)
	}
}

func TestRK4_FourthOrderConvergence(t *testing.T) {
	// Integrating dx/dt = -x to t=1 and halving dt must shrink the
	// error by roughly 2^4 = 16.
	finalError := func(dt float64) float64 {
		s, err := NewRK4(decay{}, dynamo.State{1.0}, dt)
		if err != nil {
			t.Fatal(err)
		}
		x := dynamo.State{1.0}
		tm := 0.0
		n := int(math.Round(1.0 / dt))
		for i := 0; i < n; i++ {
			x, tm, err = s.Step(x, tm)
			if err != nil {
				t.Fatal(err)
			}
		}
		return math.Abs(x[0] - math.Exp(-tm))
	}

	coarse := finalError(0.1)
	fine := finalError(0.05)
	ratio := coarse / fine
	if ratio < 12 || ratio > 20 {
		t.Errorf("error reduction ratio %.2f, want ≈16 for a 4th-order scheme", ratio)
	}
}

func TestRK4_EnergyConservation(t *testing.T) {
	s, err := NewRK4(harmonic{}, dynamo.State{1.0, 0.0}, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	x := dynamo.State{1.0, 0.0}
	e0 := energy(x)
	tm := 0.0
	for i := 0; i < 10000; i++ {
		x, tm, err = s.Step(x, tm)
		if err != nil {
			t.Fatal(err)
		}
	}
	drift := math.Abs(energy(x)-e0) / e0
	if drift > 1e-6 {
		t.Errorf("energy drift %e too high", drift)
	}
}

func TestRK4_DoesNotMutateInput(t *testing.T) {
	s, err := NewRK4(harmonic{}, dynamo.State{1.0, 0.0}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	x := dynamo.State{1.0, 0.5}
	snapshot := x.Clone()
	if _, _, err := s.Step(x, 0); err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if x[i] != snapshot[i] {
			t.Fatalf("input state mutated at %d: %v != %v", i, x[i], snapshot[i])
		}
	}
}

func TestSetStepSize(t *testing.T) {
	s, err := NewRK4(decay{}, dynamo.State{1.0}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetStepSize(0.05); err != nil {
		t.Fatal(err)
	}
	if s.StepSize() != 0.05 {
		t.Errorf("step size %v, want 0.05", s.StepSize())
	}
	if err := s.SetStepSize(-1); !errors.Is(err, dynamo.ErrStepSize) {
		t.Errorf("negative dt: got %v, want ErrStepSize", err)
	}
}
