package timeseries_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/schemes"
	"github.com/evolve-sim/evolve/internal/timeseries"
)

// decay is dx/dt = -x; under Euler each step multiplies by exactly (1-dt).
type decay struct{}

func (decay) Dim() int                             { return 1 }
func (decay) Field(dst, x dynamo.State, _ float64) { dst[0] = -x[0] }

// poison produces a NaN derivative, so the first committed state is invalid.
type poison struct{}

func (poison) Dim() int                             { return 1 }
func (poison) Field(dst, _ dynamo.State, _ float64) { dst[0] = math.NaN() }

// frozen hides the step-size accessors of the scheme it wraps.
type frozen struct{ s dynamo.Scheme }

func (f frozen) Step(x dynamo.State, t float64) (dynamo.State, float64, error) {
	return f.s.Step(x, t)
}

func newEuler(model dynamo.Model, dt float64) dynamo.Scheme {
	s, err := schemes.NewEuler(model, dynamo.State{1.0}, dt)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Producer", func() {
	Describe("every-step mode", func() {
		It("yields each committed step with exact Euler arithmetic", func() {
			ts, err := timeseries.New(newEuler(decay{}, 0.1), 0, dynamo.State{1.0}, nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i <= 20; i++ {
				t, x, err := ts.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(t).To(BeNumerically("~", 0.1*float64(i), 1e-12))
				Expect(x[0]).To(Equal(math.Pow(0.9, float64(i))))
			}
		})

		It("yields independent clones the caller may mutate", func() {
			ts, err := timeseries.New(newEuler(decay{}, 0.1), 0, dynamo.State{1.0}, nil)
			Expect(err).NotTo(HaveOccurred())

			_, x1, err := ts.Next()
			Expect(err).NotTo(HaveOccurred())
			x1[0] = 1e9

			_, x2, err := ts.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(x2[0]).To(Equal(0.9 * 0.9))
		})
	})

	Describe("checkpoint restart", func() {
		It("continues bit-for-bit identically from a checkpoint", func() {
			first, err := timeseries.New(newEuler(decay{}, 0.1), 0, dynamo.State{1.0}, nil)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 5; i++ {
				_, _, err := first.Next()
				Expect(err).NotTo(HaveOccurred())
			}

			ct, cx := first.Checkpoint()
			second, err := timeseries.New(newEuler(decay{}, 0.1), ct, cx, nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 5; i++ {
				t1, x1, err1 := first.Next()
				t2, x2, err2 := second.Next()
				Expect(err1).NotTo(HaveOccurred())
				Expect(err2).NotTo(HaveOccurred())
				Expect(t2).To(Equal(t1))
				Expect(x2).To(Equal(x1))
			}
		})
	})

	Describe("fixed-interval sampling", func() {
		Context("with exact alignment", func() {
			It("lands exactly on interval multiples and restores the step size", func() {
				s, err := schemes.NewEuler(decay{}, dynamo.State{1.0}, 0.1)
				Expect(err).NotTo(HaveOccurred())
				ts, err := timeseries.New(s, 0, dynamo.State{1.0},
					&timeseries.Options{Interval: 0.25, Align: timeseries.AlignExact})
				Expect(err).NotTo(HaveOccurred())

				// Each interval covers two full steps plus one shrunk to 0.05.
				perInterval := 0.9 * 0.9 * 0.95
				want := 1.0
				for i := 1; i <= 4; i++ {
					t, x, err := ts.Next()
					Expect(err).NotTo(HaveOccurred())
					Expect(t).To(Equal(0.25 * float64(i)))
					want *= perInterval
					Expect(x[0]).To(BeNumerically("~", want, 1e-12))
					Expect(s.StepSize()).To(Equal(0.1))
				}
			})

			It("refuses a scheme with a fixed, inaccessible step size", func() {
				_, err := timeseries.New(frozen{s: newEuler(decay{}, 0.1)}, 0, dynamo.State{1.0},
					&timeseries.Options{Interval: 0.25, Align: timeseries.AlignExact})
				Expect(err).To(MatchError(dynamo.ErrStepSize))
			})
		})

		Context("with nearest alignment", func() {
			It("yields the committed step closest to each target", func() {
				ts, err := timeseries.New(newEuler(decay{}, 0.1), 0, dynamo.State{1.0},
					&timeseries.Options{Interval: 0.24, Align: timeseries.AlignNearest})
				Expect(err).NotTo(HaveOccurred())

				// Target 0.24: committed times straddle it at 0.2 and 0.3,
				// so the earlier one wins.
				t, x, err := ts.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(t).To(BeNumerically("~", 0.2, 1e-9))
				Expect(x[0]).To(BeNumerically("~", math.Pow(0.9, 2), 1e-12))

				// Target 0.48: integration resumed from 0.3, so the
				// straddle is 0.4 and 0.5 and the later one wins.
				t, x, err = ts.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(t).To(BeNumerically("~", 0.5, 1e-9))
				Expect(x[0]).To(BeNumerically("~", math.Pow(0.9, 5), 1e-12))
			})
		})

		It("rejects a negative interval", func() {
			_, err := timeseries.New(newEuler(decay{}, 0.1), 0, dynamo.State{1.0},
				&timeseries.Options{Interval: -1})
			Expect(err).To(MatchError(dynamo.ErrStepSize))
		})
	})

	Describe("failure handling", func() {
		It("flags non-finite states and stays failed", func() {
			ts, err := timeseries.New(newEuler(poison{}, 0.1), 0, dynamo.State{1.0}, nil)
			Expect(err).NotTo(HaveOccurred())

			_, x, err := ts.Next()
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
			Expect(x).To(BeNil())

			var stepErr *dynamo.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Time).To(BeNumerically("~", 0.1, 1e-12))

			_, _, again := ts.Next()
			Expect(again).To(Equal(err))
		})

		It("lets validation be disabled for schemes that police themselves", func() {
			ts, err := timeseries.New(newEuler(poison{}, 0.1), 0, dynamo.State{1.0},
				&timeseries.Options{SkipValidation: true})
			Expect(err).NotTo(HaveOccurred())

			_, x, err := ts.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(x[0])).To(BeTrue())
		})
	})
})
