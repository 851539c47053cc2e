// Package analysis provides trajectory diagnostics built on top of the
// scheme abstraction.
package analysis

import (
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// LargestExponent estimates the largest Lyapunov exponent by the
// twin-trajectory separation method: a perturbed copy of the trajectory
// is advanced alongside the reference, the separation is renormalized
// back to delta0 every step, and the accumulated log-stretching divided
// by elapsed time gives the exponent. A positive value indicates chaos.
//
// Both trajectories are advanced by the same scheme instance, so a
// fixed-step scheme must be used: an adaptive controller would let the
// two trajectories drift onto different time grids.
func LargestExponent(scheme dynamo.Scheme, x0 dynamo.State, delta0 float64, steps int) (float64, error) {
	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += delta0

	t := 0.0
	tp := 0.0
	sumLog := 0.0

	var err error
	for i := 0; i < steps; i++ {
		x, t, err = scheme.Step(x, t)
		if err != nil {
			return 0, err
		}
		xp, tp, err = scheme.Step(xp, tp)
		if err != nil {
			return 0, err
		}

		sep := xp.Sub(x).Norm()
		if sep <= 0 {
			continue
		}
		sumLog += math.Log(sep / delta0)

		// Renormalize so the separation stays infinitesimal.
		scale := delta0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if t == 0 {
		return 0, nil
	}
	return sumLog / t, nil
}
