// Package models provides example systems for the integration engine.
//
// Each model implements [dynamo.Model]; the stiff ones additionally
// implement [dynamo.SplitModel], exposing a time-independent linear
// operator and the nonlinear remainder:
//
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: band attractor
//   - [VanDerPol]: relaxation oscillator, stiff for large mu
//   - [Duffing]: periodically forced oscillator, time-dependent field
//   - [Pendulum]: damped planar pendulum with energy accessor
//   - [DoublePendulum]: chaotic two-link pendulum
//   - [Oscillator]: damped harmonic oscillator as a pure-linear split
//   - [Fisher]: 1-D Fisher-KPP reaction-diffusion on a periodic grid
//   - [Burgers]: 1-D viscous Burgers equation, pseudo-spectral
package models
