// Package biquad provides second-order IIR (biquad) filter primitives.
//
// [Coefficients] holds a normalized transfer function and can be designed
// from the RBJ audio EQ cookbook via [LowPass], [HighPass], [BandPass] and
// [Notch]. A [Section] runs those coefficients sample by sample in Direct
// Form I, keeping two samples of input and output history.
//
// Coefficients are designed in float64; a Section narrows them to float32
// once per design so the per-sample path stays allocation-free and never
// converts.
package biquad
