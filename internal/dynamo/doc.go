// Package dynamo defines the core contracts of the integration engine.
//
// The package holds the fundamental types for numerical time integration
// of first-order systems dx/dt = f(x, t):
//
//   - [State]: vector representing the system state
//   - [Model]: vector-field evaluation f(x, t)
//   - [SplitModel]: linear/nonlinear decomposition f = L·x + N(x, t)
//     for semi-implicit integration of stiff systems
//   - [Scheme]: advances the state by one committed step
//   - [StepSizer]: step-size inspection and mutation between steps
//
// # Example
//
//	model := models.NewLorenz()
//	scheme, _ := schemes.NewRK4(model, x0, 0.01)
//	ts, _ := timeseries.New(scheme, 0, x0, nil)
//	t, x, err := ts.Next()
//
// # Thread Safety
//
// A Scheme and the state it advances are owned by one goroutine at a
// time; schemes hold private scratch buffers and must not be shared.
// Independent trajectories may run in parallel, one scheme each (see
// experiment.Ensemble).
package dynamo
