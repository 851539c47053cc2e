package schemes

// Tableau holds the Butcher coefficients of an embedded Runge-Kutta pair.
// B gives the weights of the higher-order solution; E holds the error
// weights, the difference between the higher- and lower-order weights, so
// that dt·Σ E_j·k_j is the local truncation error estimate. Order is the
// order p of the lower-order member: the step controller uses the
// exponent 1/(p+1).
type Tableau struct {
	Name  string
	Order int
	C     []float64
	A     [][]float64
	B     []float64
	E     []float64
}

// Stages returns the number of shared stage evaluations.
func (tb *Tableau) Stages() int { return len(tb.C) }

// DormandPrince returns the Dormand-Prince 5(4) pair, the method behind
// MATLAB's ode45.
//
// Reference: J.R. Dormand & P.J. Prince, "A family of embedded
// Runge-Kutta formulae", J. Comp. Appl. Math., 6 (1980) 19-26.
func DormandPrince() *Tableau {
	return &Tableau{
		Name:  "dopri5",
		Order: 4,
		C:     []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
		A: [][]float64{
			{},
			{1.0 / 5.0},
			{3.0 / 40.0, 9.0 / 40.0},
			{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
			{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
			{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
			{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
		},
		B: []float64{
			35.0 / 384.0,
			0,
			500.0 / 1113.0,
			125.0 / 192.0,
			-2187.0 / 6784.0,
			11.0 / 84.0,
			0,
		},
		E: []float64{
			35.0/384.0 - 5179.0/57600.0,
			0,
			500.0/1113.0 - 7571.0/16695.0,
			125.0/192.0 - 393.0/640.0,
			-2187.0/6784.0 + 92097.0/339200.0,
			11.0/84.0 - 187.0/2100.0,
			-1.0 / 40.0,
		},
	}
}

// BogackiShampine returns the Bogacki-Shampine 3(2) pair, useful when the
// 5(4) pair is overkill but adaptive stepping is still wanted.
//
// Reference: P. Bogacki & L.F. Shampine, "A 3(2) pair of Runge-Kutta
// formulas", Appl. Math. Lett., 2 (1989) 321-325.
func BogackiShampine() *Tableau {
	return &Tableau{
		Name:  "bosh3",
		Order: 2,
		C:     []float64{0, 1.0 / 2.0, 3.0 / 4.0, 1},
		A: [][]float64{
			{},
			{1.0 / 2.0},
			{0, 3.0 / 4.0},
			{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0},
		},
		B: []float64{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0},
		E: []float64{
			2.0/9.0 - 7.0/24.0,
			1.0/3.0 - 1.0/4.0,
			4.0/9.0 - 1.0/3.0,
			-1.0 / 8.0,
		},
	}
}
