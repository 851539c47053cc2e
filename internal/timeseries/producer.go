// Package timeseries drives a scheme across many steps and exposes the
// trajectory as a lazy, pull-based sequence of (time, state) pairs. The
// sequence is conceptually infinite: it ends only when the caller stops
// pulling or a step fails. A producer is not rewindable; restart from a
// checkpoint by constructing a new producer.
package timeseries

import (
	"fmt"

	"github.com/evolve-sim/evolve/internal/dynamo"
)

// Alignment selects how fixed-interval sampling lands on output times.
type Alignment int

const (
	// AlignExact shrinks the last internal step so the committed state
	// lands exactly on the output time; the step size is restored
	// afterwards.
	AlignExact Alignment = iota

	// AlignNearest yields the committed step whose time is closest to
	// the output time, without touching the step size.
	AlignNearest
)

func (a Alignment) String() string {
	switch a {
	case AlignExact:
		return "exact"
	case AlignNearest:
		return "nearest"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// Options configures sampling and defensive checks. The zero value means
// every committed step is yielded and committed states are validated.
type Options struct {
	// Interval is the fixed output spacing; zero yields every committed
	// step. Must be at least the underlying step size to be useful.
	Interval float64

	// Align selects the sampling policy when Interval is set.
	Align Alignment

	// SkipValidation disables the NaN/Inf check on committed states.
	SkipValidation bool
}

// Producer pulls committed steps out of a scheme. It owns its copy of the
// state; yielded states are fresh clones the caller may keep or mutate.
type Producer struct {
	scheme dynamo.Scheme
	t      float64
	x      dynamo.State
	opts   Options

	t0     float64
	sample int
	err    error
}

// New builds a producer starting from the checkpoint (t0, x0). With a
// sampling interval and AlignExact the scheme must implement
// dynamo.StepSizer so the last internal step of each interval can be
// shrunk.
func New(scheme dynamo.Scheme, t0 float64, x0 dynamo.State, opts *Options) (*Producer, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Interval < 0 {
		return nil, fmt.Errorf("%w: interval %v", dynamo.ErrStepSize, o.Interval)
	}
	if o.Interval > 0 && o.Align == AlignExact {
		if _, ok := scheme.(dynamo.StepSizer); !ok {
			return nil, fmt.Errorf("%w: exact alignment needs a resizable scheme, got %T", dynamo.ErrStepSize, scheme)
		}
	}
	return &Producer{
		scheme: scheme,
		t:      t0,
		x:      x0.Clone(),
		opts:   o,
		t0:     t0,
	}, nil
}

// Checkpoint returns the current (time, state) pair, from which an
// identical continuation can be constructed.
func (p *Producer) Checkpoint() (float64, dynamo.State) {
	return p.t, p.x.Clone()
}

// Next advances to the next output point and returns it. Once a step
// fails, the error is sticky and every later call returns it.
func (p *Producer) Next() (float64, dynamo.State, error) {
	if p.err != nil {
		return p.t, nil, p.err
	}

	if p.opts.Interval == 0 {
		if err := p.step(); err != nil {
			p.err = err
			return p.t, nil, err
		}
		return p.t, p.x.Clone(), nil
	}

	p.sample++
	target := p.t0 + float64(p.sample)*p.opts.Interval

	var (
		yt  float64
		yx  dynamo.State
		err error
	)
	switch p.opts.Align {
	case AlignExact:
		yt, yx, err = p.advanceExact(target)
	case AlignNearest:
		yt, yx, err = p.advanceNearest(target)
	default:
		err = fmt.Errorf("timeseries: unknown alignment %v", p.opts.Align)
	}
	if err != nil {
		p.err = err
		return p.t, nil, err
	}
	return yt, yx, nil
}

// step commits exactly one step and validates the result.
func (p *Producer) step() error {
	x, t, err := p.scheme.Step(p.x, p.t)
	if err != nil {
		return err
	}
	if !p.opts.SkipValidation && !x.IsValid() {
		return &dynamo.StepError{Time: t, Wrapped: dynamo.ErrInvalidState}
	}
	p.x = x
	p.t = t
	return nil
}

// advanceExact steps until the target output time, shrinking the final
// internal step to land exactly on it. The configured step size is
// restored after the shortened step.
func (p *Producer) advanceExact(target float64) (float64, dynamo.State, error) {
	sizer := p.scheme.(dynamo.StepSizer)
	for p.t < target {
		dt := sizer.StepSize()
		if remaining := target - p.t; dt > remaining {
			if err := sizer.SetStepSize(remaining); err != nil {
				return 0, nil, err
			}
			err := p.step()
			if rerr := sizer.SetStepSize(dt); err == nil {
				err = rerr
			}
			if err != nil {
				return 0, nil, err
			}
			continue
		}
		if err := p.step(); err != nil {
			return 0, nil, err
		}
	}
	// The loop never requests more than the remaining span, so any
	// overshoot is round-off; pin the committed time to the target.
	p.t = target
	return p.t, p.x.Clone(), nil
}

// advanceNearest steps until the target is reached or passed, then yields
// whichever committed step lies closer to it. When the earlier step wins,
// integration still continues from the later one.
func (p *Producer) advanceNearest(target float64) (float64, dynamo.State, error) {
	prevT, prevX := p.t, p.x
	for p.t < target {
		prevT, prevX = p.t, p.x
		if err := p.step(); err != nil {
			return 0, nil, err
		}
	}
	if target-prevT < p.t-target {
		return prevT, prevX.Clone(), nil
	}
	return p.t, p.x.Clone(), nil
}
