package operator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Dense is a general linear operator backed by a gonum dense matrix.
// Its propagator is the matrix exponential exp(dt·L) computed by
// scaling-and-squaring with a 6/6 Padé approximant.
type Dense struct {
	m *mat.Dense
	n int
}

// NewDense builds a dense operator from an n×n row-major matrix.
func NewDense(n int, data []float64) (*Dense, error) {
	if len(data) != n*n {
		return nil, fmt.Errorf("operator: dense data length %d, want %d", len(data), n*n)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: entry %d=%v", ErrNonFinite, i, v)
		}
	}
	return &Dense{m: mat.NewDense(n, n, data), n: n}, nil
}

func (d *Dense) Dim() int { return d.n }

func (d *Dense) Apply(dst, x []float64) {
	var y mat.VecDense
	y.MulVec(d.m, mat.NewVecDense(d.n, x))
	copy(dst, y.RawVector().Data)
}

func (d *Dense) Propagator(dt float64) (Propagator, error) {
	var scaled mat.Dense
	scaled.Scale(dt, d.m)
	e, err := expm(&scaled)
	if err != nil {
		return nil, err
	}
	return &densePropagator{m: e, n: d.n}, nil
}

type densePropagator struct {
	m *mat.Dense
	n int
}

func (p *densePropagator) Apply(dst, x []float64) {
	var y mat.VecDense
	y.MulVec(p.m, mat.NewVecDense(p.n, x))
	copy(dst, y.RawVector().Data)
}

// expm computes exp(a) by scaling-and-squaring with a 6/6 Padé approximant.
func expm(a *mat.Dense) (*mat.Dense, error) {
	n, _ := a.Dims()

	// Scale so that the 1-norm is below 1/2, square back afterwards.
	s := 0
	if norm := oneNorm(a); norm > 0.5 {
		s = int(math.Ceil(math.Log2(norm / 0.5)))
	}
	var x mat.Dense
	x.Scale(1/math.Pow(2, float64(s)), a)

	const q = 6
	c := make([]float64, q+1)
	c[0] = 1
	for k := 1; k <= q; k++ {
		c[k] = c[k-1] * float64(q-k+1) / (float64(k) * float64(2*q-k+1))
	}

	var x2, x4, x6 mat.Dense
	x2.Mul(&x, &x)
	x4.Mul(&x2, &x2)
	x6.Mul(&x4, &x2)

	// Odd part U = X(c1·I + c3·X² + c5·X⁴), even part V = c0·I + c2·X² + c4·X⁴ + c6·X⁶.
	uInner := scaledIdentity(n, c[1])
	addScaled(uInner, c[3], &x2)
	addScaled(uInner, c[5], &x4)
	var u mat.Dense
	u.Mul(&x, uInner)

	v := scaledIdentity(n, c[0])
	addScaled(v, c[2], &x2)
	addScaled(v, c[4], &x4)
	addScaled(v, c[6], &x6)

	var p, qm mat.Dense
	p.Add(v, &u)
	qm.Sub(v, &u)

	var r mat.Dense
	if err := r.Solve(&qm, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	for i := 0; i < s; i++ {
		var sq mat.Dense
		sq.Mul(&r, &r)
		r.CloneFrom(&sq)
	}

	for _, v := range r.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: exponential did not converge", ErrNonFinite)
		}
	}
	return &r, nil
}

func oneNorm(a *mat.Dense) float64 {
	n, cols := a.Dims()
	max := 0.0
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += math.Abs(a.At(i, j))
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

func scaledIdentity(n int, c float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, c)
	}
	return m
}

func addScaled(dst *mat.Dense, c float64, a *mat.Dense) {
	var t mat.Dense
	t.Scale(c, a)
	dst.Add(dst, &t)
}
