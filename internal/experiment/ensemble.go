package experiment

import (
	"context"
	"sync"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/timeseries"
)

// Trajectory is one finished ensemble member.
type Trajectory struct {
	Times  []float64
	States []dynamo.State
}

// Ensemble integrates independent trajectories in parallel. Each member
// gets its own scheme (and therefore its own scratch buffers) from the
// factory; the engine itself shares nothing across members.
type Ensemble struct {
	NewScheme func() (dynamo.Scheme, error)
	Steps     int
}

// Run integrates one trajectory per initial condition, all starting at
// t0, and returns them in input order.
func (e *Ensemble) Run(ctx context.Context, t0 float64, starts []dynamo.State) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(starts))
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i, x0 := range starts {
		wg.Add(1)
		go func(idx int, x0 dynamo.State) {
			defer wg.Done()
			results[idx], errs[idx] = e.runOne(ctx, t0, x0)
		}(i, x0)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, t0 float64, x0 dynamo.State) (*Trajectory, error) {
	scheme, err := e.NewScheme()
	if err != nil {
		return nil, err
	}
	ts, err := timeseries.New(scheme, t0, x0, nil)
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{
		Times:  make([]float64, 0, e.Steps),
		States: make([]dynamo.State, 0, e.Steps),
	}
	for i := 0; i < e.Steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}
		t, x, err := ts.Next()
		if err != nil {
			return nil, err
		}
		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, x)
	}
	return traj, nil
}
