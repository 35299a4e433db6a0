package biquad

import "math"

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// cookbook holds the trigonometric terms shared by every RBJ design.
type cookbook struct {
	sin, cos, alpha float64
}

func newCookbook(freqHz, q, sampleRate float64) cookbook {
	w := 2 * math.Pi * freqHz / sampleRate
	sin, cos := math.Sincos(w)

	return cookbook{sin: sin, cos: cos, alpha: sin / (2 * q)}
}

// normalize divides the raw cookbook terms by a0.
func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}

// LowPass designs a second-order low-pass section.
func LowPass(freqHz, q, sampleRate float64) Coefficients {
	k := newCookbook(freqHz, q, sampleRate)

	return normalize(
		(1-k.cos)/2, 1-k.cos, (1-k.cos)/2,
		1+k.alpha, -2*k.cos, 1-k.alpha,
	)
}

// HighPass designs a second-order high-pass section.
func HighPass(freqHz, q, sampleRate float64) Coefficients {
	k := newCookbook(freqHz, q, sampleRate)

	return normalize(
		(1+k.cos)/2, -(1 + k.cos), (1+k.cos)/2,
		1+k.alpha, -2*k.cos, 1-k.alpha,
	)
}

// BandPass designs a band-pass section with constant skirt gain
// (peak gain equals q).
func BandPass(freqHz, q, sampleRate float64) Coefficients {
	k := newCookbook(freqHz, q, sampleRate)

	return normalize(
		k.sin/2, 0, -k.sin/2,
		1+k.alpha, -2*k.cos, 1-k.alpha,
	)
}

// Notch designs a band-reject section.
func Notch(freqHz, q, sampleRate float64) Coefficients {
	k := newCookbook(freqHz, q, sampleRate)

	return normalize(
		1, -2*k.cos, 1,
		1+k.alpha, -2*k.cos, 1-k.alpha,
	)
}

// HighShelf designs a shelving section that applies gainDB above freqHz
// and unity gain well below it.
func HighShelf(freqHz, gainDB, q, sampleRate float64) Coefficients {
	k := newCookbook(freqHz, q, sampleRate)
	a := math.Pow(10, gainDB/40)
	r := 2 * math.Sqrt(a) * k.alpha

	return normalize(
		a*((a+1)+(a-1)*k.cos+r), -2*a*((a-1)+(a+1)*k.cos), a*((a+1)+(a-1)*k.cos-r),
		(a+1)-(a-1)*k.cos+r, 2*((a-1)-(a+1)*k.cos), (a+1)-(a-1)*k.cos-r,
	)
}

// Passthrough returns coefficients that copy input to output.
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}
