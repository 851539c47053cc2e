package models

import (
	"math"
	"testing"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// checkSplitConsistency verifies Field == Linear·x + Nonlinear pointwise.
func checkSplitConsistency(t *testing.T, m dynamo.SplitModel, x dynamo.State) {
	t.Helper()
	n := m.Dim()
	full := make(dynamo.State, n)
	lx := make(dynamo.State, n)
	nx := make(dynamo.State, n)

	m.Field(full, x, 0)
	m.Linear().Apply(lx, x)
	m.Nonlinear(nx, x, 0)

	for i := 0; i < n; i++ {
		if diff := math.Abs(full[i] - (lx[i] + nx[i])); diff > 1e-12 {
			t.Errorf("component %d: field %v != linear %v + nonlinear %v", i, full[i], lx[i], nx[i])
		}
	}
}

func TestLorenz_FixedPointAtOrigin(t *testing.T) {
	m := NewLorenz()
	dst := make(dynamo.State, 3)
	m.Field(dst, dynamo.State{0, 0, 0}, 0)
	for i, v := range dst {
		if v != 0 {
			t.Errorf("component %d at origin: %v, want 0", i, v)
		}
	}
}

func TestLorenz_SetParam(t *testing.T) {
	m := NewLorenz()
	m.SetParam("rho", 14)
	if got := m.GetParams()["rho"]; got != 14 {
		t.Errorf("rho = %v, want 14", got)
	}
}

func TestVanDerPol_LimitCycleDirection(t *testing.T) {
	m := NewVanDerPol()
	dst := make(dynamo.State, 2)
	// Inside the unit strip the damping term pumps energy in.
	m.Field(dst, dynamo.State{0.5, 1.0}, 0)
	if dst[1] <= -0.5 {
		t.Errorf("dy/dt = %v, want positive damping contribution", dst[1])
	}
}

func TestPendulum_SmallAngleFrequency(t *testing.T) {
	m := NewPendulum()
	m.SetParam("damping", 0)
	dst := make(dynamo.State, 2)
	theta := 1e-4
	m.Field(dst, dynamo.State{theta, 0}, 0)
	// For small angles the restoring acceleration is -g/l·theta.
	want := -9.81 * theta
	if math.Abs(dst[1]-want)/math.Abs(want) > 1e-6 {
		t.Errorf("acceleration %v, want %v", dst[1], want)
	}
}

func TestPendulum_EnergyAtRest(t *testing.T) {
	m := NewPendulum()
	if e := m.Energy(dynamo.State{0, 0}); e != 0 {
		t.Errorf("energy at rest = %v, want 0", e)
	}
}

func TestDoublePendulum_HangingEquilibrium(t *testing.T) {
	m := NewDoublePendulum()
	dst := make(dynamo.State, 4)
	m.Field(dst, dynamo.State{0, 0, 0, 0}, 0)
	for i, v := range dst {
		if v != 0 {
			t.Errorf("component %d at equilibrium: %v, want 0", i, v)
		}
	}
}

func TestOscillator_SplitConsistency(t *testing.T) {
	m, err := NewOscillator(2.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	checkSplitConsistency(t, m, dynamo.State{0.7, -0.3})
}

func TestFisher_SplitConsistency(t *testing.T) {
	m, err := NewFisher(32, 1e-3, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	checkSplitConsistency(t, m, m.DefaultState())
}

func TestFisher_UniformStatesAreEquilibria(t *testing.T) {
	m, err := NewFisher(16, 1e-3, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	dst := make(dynamo.State, 16)
	for _, u := range []float64{0, 1} {
		x := make(dynamo.State, 16)
		for i := range x {
			x[i] = u
		}
		m.Field(dst, x, 0)
		for i, v := range dst {
			if math.Abs(v) > 1e-12 {
				t.Errorf("u=%v component %d: %v, want 0", u, i, v)
			}
		}
	}
}

func TestBurgers_SplitConsistency(t *testing.T) {
	m, err := NewBurgers(32, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	checkSplitConsistency(t, m, m.DefaultState())
}

func TestBurgers_AdvectionOfSine(t *testing.T) {
	// For u = sin(x), -u·u_x = -sin(x)·cos(x).
	const n = 32
	m, err := NewBurgers(n, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	u := m.DefaultState()
	dst := make(dynamo.State, n)
	m.Nonlinear(dst, u, 0)
	for j := 0; j < n; j++ {
		xj := 2 * math.Pi * float64(j) / float64(n)
		want := -math.Sin(xj) * math.Cos(xj)
		if math.Abs(dst[j]-want) > 1e-12 {
			t.Fatalf("grid point %d: got %v, want %v", j, dst[j], want)
		}
	}
}
