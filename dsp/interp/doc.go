// Package interp provides interpolation primitives for float32 samples.
//
//   - [Lerp]:  2-point linear interpolation
//   - [Cubic]: 4-point cubic polynomial through the two inner points
//
// [Lerp] also serves as the one-pole step of the parameter smoother.
package interp
