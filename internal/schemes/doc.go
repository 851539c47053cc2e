// Package schemes implements the stepping schemes of the engine: the
// fixed-step explicit integrators (Euler, classical RK4), the embedded
// adaptive Runge-Kutta family driven by a Butcher tableau with error
// weights, and the semi-implicit (integrating-factor) integrators for
// stiff systems with a linear/nonlinear split.
//
// Every scheme owns its stage and scratch buffers, sized once at
// construction from a prototype state and reused across steps.
package schemes
