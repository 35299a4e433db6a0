// Package response measures the magnitude response of a per-sample effect
// or effect chain.
//
// Analyze drives a system with a unit impulse, transforms the captured
// impulse response with an FFT and reports the magnitude of every bin in dB.
// The result only describes linear, time-invariant effects faithfully.
// Nonlinear effects such as distortion still produce a curve, but it reflects
// their response to a single full-scale impulse.
package response
