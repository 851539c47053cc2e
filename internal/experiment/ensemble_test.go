package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/schemes"
)

type decay struct{}

func (decay) Dim() int                             { return 1 }
func (decay) Field(dst, x dynamo.State, _ float64) { dst[0] = -x[0] }

func TestEnsemble_RunPreservesOrderAndValues(t *testing.T) {
	e := &Ensemble{
		NewScheme: func() (dynamo.Scheme, error) {
			return schemes.NewEuler(decay{}, dynamo.State{1.0}, 0.1)
		},
		Steps: 10,
	}

	starts := []dynamo.State{{1.0}, {2.0}, {-3.0}, {0.5}}
	trajs, err := e.Run(context.Background(), 0, starts)
	if err != nil {
		t.Fatal(err)
	}
	if len(trajs) != len(starts) {
		t.Fatalf("%d trajectories, want %d", len(trajs), len(starts))
	}

	factor := math.Pow(0.9, 10)
	for i, traj := range trajs {
		if len(traj.Times) != 10 {
			t.Fatalf("member %d: %d output points", i, len(traj.Times))
		}
		want := starts[i][0] * factor
		got := traj.States[9][0]
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("member %d final state %v, want %v", i, got, want)
		}
	}
}

func TestEnsemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Ensemble{
		NewScheme: func() (dynamo.Scheme, error) {
			return schemes.NewEuler(decay{}, dynamo.State{1.0}, 0.1)
		},
		Steps: 1000,
	}
	if _, err := e.Run(ctx, 0, []dynamo.State{{1.0}}); err == nil {
		t.Error("cancelled run returned no error")
	}
}
