package experiment

import (
	"context"
	"math"
)

// Sweep walks the cartesian product of parameter grids and keeps the
// parameter set with the smallest score. The score function typically
// integrates a model built from the candidate parameters and evaluates an
// analysis metric on the result.
type Sweep struct {
	Names  []string
	Values [][]float64
}

// Minimize evaluates score at every grid point. Grid points whose score
// function fails are skipped; an exhausted context aborts the walk and
// returns its error along with the best result so far.
func (s *Sweep) Minimize(ctx context.Context, score func(params map[string]float64) (float64, error)) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := s.walk(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		val, err := score(params)
		if err != nil || val >= best {
			return
		}
		best = val
		bestParams = make(map[string]float64, len(params))
		for k, v := range params {
			bestParams[k] = v
		}
	})
	return bestParams, best, err
}

func (s *Sweep) walk(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(s.Names) {
		visit(current)
		return nil
	}
	for _, v := range s.Values[depth] {
		current[s.Names[depth]] = v
		if err := s.walk(ctx, depth+1, current, visit); err != nil {
			return err
		}
	}
	delete(current, s.Names[depth])
	return nil
}
