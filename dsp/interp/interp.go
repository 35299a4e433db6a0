package interp

// Lerp blends a toward b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Cubic interpolates between y1 and y2 using the outer neighbors y0 and y3.
// t is the fractional position in [0, 1].
func Cubic(y0, y1, y2, y3, t float32) float32 {
	t2 := t * t
	a0 := y3 - y2 - y0 + y1
	a1 := y0 - y1 - a0
	a2 := y2 - y0
	a3 := y1

	return a0*t*t2 + a1*t2 + a2*t + a3
}
