package schemes

import (
	"fmt"
	"math"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// AdaptiveConfig tunes the embedded step-size controller.
type AdaptiveConfig struct {
	InitialStep   float64
	RTol          float64
	ATol          float64
	Safety        float64
	MinFactor     float64
	MaxFactor     float64
	MaxRejections int
}

// DefaultAdaptiveConfig returns the controller settings used when a field
// is left at its zero value.
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		InitialStep:   0.01,
		RTol:          1e-6,
		ATol:          1e-9,
		Safety:        0.9,
		MinFactor:     0.2,
		MaxFactor:     10.0,
		MaxRejections: 20,
	}
}

func (c AdaptiveConfig) validate() error {
	if c.InitialStep <= 0 {
		return fmt.Errorf("%w: initial step %v", dynamo.ErrStepSize, c.InitialStep)
	}
	if c.RTol < 0 || c.ATol < 0 || (c.RTol == 0 && c.ATol == 0) {
		return fmt.Errorf("%w: rtol=%v atol=%v", dynamo.ErrTolerance, c.RTol, c.ATol)
	}
	if c.Safety <= 0 || c.Safety >= 1 {
		return fmt.Errorf("%w: safety=%v, want (0,1)", dynamo.ErrTolerance, c.Safety)
	}
	if c.MinFactor <= 0 || c.MaxFactor < c.MinFactor {
		return fmt.Errorf("%w: factors [%v,%v]", dynamo.ErrTolerance, c.MinFactor, c.MaxFactor)
	}
	if c.MaxRejections <= 0 {
		return fmt.Errorf("%w: max rejections %d", dynamo.ErrTolerance, c.MaxRejections)
	}
	return nil
}

// Embedded is the time-adaptive scheme built on an embedded Runge-Kutta
// pair: both candidate solutions share the stage evaluations, their
// difference drives accept/reject and the next step size. A rejected
// attempt leaves time and the caller's state untouched; only the step
// size changes.
type Embedded struct {
	model dynamo.Model
	tab   *Tableau
	cfg   AdaptiveConfig
	dt    float64

	k         []dynamo.State
	xs        dynamo.State
	candidate dynamo.State
}

// NewEmbedded builds an adaptive scheme from a tableau. Zero-valued
// config fields are filled from DefaultAdaptiveConfig.
func NewEmbedded(model dynamo.Model, proto dynamo.State, tab *Tableau, cfg AdaptiveConfig) (*Embedded, error) {
	def := DefaultAdaptiveConfig()
	if cfg.InitialStep == 0 {
		cfg.InitialStep = def.InitialStep
	}
	if cfg.RTol == 0 && cfg.ATol == 0 {
		cfg.RTol, cfg.ATol = def.RTol, def.ATol
	}
	if cfg.Safety == 0 {
		cfg.Safety = def.Safety
	}
	if cfg.MinFactor == 0 {
		cfg.MinFactor = def.MinFactor
	}
	if cfg.MaxFactor == 0 {
		cfg.MaxFactor = def.MaxFactor
	}
	if cfg.MaxRejections == 0 {
		cfg.MaxRejections = def.MaxRejections
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(proto) != model.Dim() {
		return nil, fmt.Errorf("%w: prototype %d, model %d", dynamo.ErrDimensionMismatch, len(proto), model.Dim())
	}

	n := len(proto)
	k := make([]dynamo.State, tab.Stages())
	for i := range k {
		k[i] = make(dynamo.State, n)
	}
	return &Embedded{
		model:     model,
		tab:       tab,
		cfg:       cfg,
		dt:        cfg.InitialStep,
		k:         k,
		xs:        make(dynamo.State, n),
		candidate: make(dynamo.State, n),
	}, nil
}

// attempt computes the shared stages once, fills the candidate buffer
// with the higher-order solution and returns the error norm together
// with its tolerance scale. It never commits anything.
func (s *Embedded) attempt(x dynamo.State, t float64) (errNorm, tol float64) {
	n := len(x)
	dt := s.dt

	s.model.Field(s.k[0], x, t)
	for stage := 1; stage < s.tab.Stages(); stage++ {
		copy(s.xs, x)
		for j, a := range s.tab.A[stage] {
			if a == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				s.xs[i] += dt * a * s.k[j][i]
			}
		}
		s.model.Field(s.k[stage], s.xs, t+s.tab.C[stage]*dt)
	}

	copy(s.candidate, x)
	for j, b := range s.tab.B {
		if b == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			s.candidate[i] += dt * b * s.k[j][i]
		}
	}

	// Local truncation error is the difference between the two embedded
	// solutions, expressed through the error weights.
	sumSq := 0.0
	for i := 0; i < n; i++ {
		e := 0.0
		for j, w := range s.tab.E {
			if w != 0 {
				e += w * s.k[j][i]
			}
		}
		e *= dt
		sumSq += e * e
	}
	errNorm = math.Sqrt(sumSq)
	tol = s.cfg.ATol + s.cfg.RTol*math.Max(x.Norm(), s.candidate.Norm())
	return errNorm, tol
}

// Step attempts the current step size, retrying with smaller steps on
// rejection, and commits the first accepted candidate. Exceeding the
// consecutive-rejection cap surfaces dynamo.ErrUnstable.
func (s *Embedded) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	if len(x) != len(s.xs) {
		return nil, t, fmt.Errorf("%w: state %d, scratch %d", dynamo.ErrDimensionMismatch, len(x), len(s.xs))
	}

	rejections := 0
	for {
		errNorm, tol := s.attempt(x, t)
		accepted := errNorm <= tol

		e := errNorm
		if e == 0 {
			e = math.SmallestNonzeroFloat64
		}
		factor := s.cfg.Safety * math.Pow(tol/e, 1/float64(s.tab.Order+1))
		if factor < s.cfg.MinFactor {
			factor = s.cfg.MinFactor
		} else if factor > s.cfg.MaxFactor {
			factor = s.cfg.MaxFactor
		}

		dtUsed := s.dt
		s.dt = dtUsed * factor

		if accepted {
			return s.candidate.Clone(), t + dtUsed, nil
		}

		rejections++
		if rejections > s.cfg.MaxRejections {
			return nil, t, &dynamo.StepError{Time: t, Rejections: rejections, Wrapped: dynamo.ErrUnstable}
		}
	}
}

func (s *Embedded) StepSize() float64 { return s.dt }

func (s *Embedded) SetStepSize(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrStepSize, dt)
	}
	s.dt = dt
	return nil
}
