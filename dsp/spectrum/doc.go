// Package spectrum holds helpers that work next to an FFT: single-bin tone
// analysis, phase unwrapping, group delay and fractional-octave smoothing.
//
// The package does not compute FFTs itself. Callers pass the bins produced
// by their FFT backend.
package spectrum
