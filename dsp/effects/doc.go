// Package effects provides single-sample audio effects behind a common
// [Effect] interface.
//
// Effects in this package:
//   - Filter: resonant biquad with low-pass, high-pass, band-pass and notch
//     responses.
//   - Delay: feedback delay over a growable ring buffer with dry/wet mix.
//   - Distortion: memoryless waveshaper (soft, hard, foldback, sine and
//     bitcrush transfer functions).
//
// Every effect processes exactly one sample per call and never allocates
// inside Process. Parameters are set either through typed setters or by
// name via [Effect.SetParameter]; out-of-range values are clamped and
// unknown type codes fall back to a default variant, so no call on an
// effect returns an error.
package effects
