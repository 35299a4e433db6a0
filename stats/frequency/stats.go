// Package frequency summarizes a one-sided magnitude spectrum, such as the
// measured response of an effect chain.
package frequency

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// RolloffFraction is the energy share used for Stats.Rolloff.
const RolloffFraction = 0.85

// Stats holds shape descriptors of a magnitude spectrum. Frequencies are in
// Hz.
//
//nolint:revive
type Stats struct {
	BinCount int
	Peak     float64
	Peak_dB  float64
	PeakHz   float64
	Energy   float64 // sum of squared magnitudes
	Centroid float64
	Spread   float64
	// Flatness is the Wiener entropy of bins 1..N-1, between 0 and 1.
	Flatness float64
	Rolloff  float64
	// LowerEdge and UpperEdge are the -3 dB points around the peak. An
	// edge that is never crossed sits at DC or Nyquist.
	LowerEdge float64
	UpperEdge float64
	Bandwidth float64
}

// binHz returns the frequency of bin i when the spectrum has binCount
// bins from DC to Nyquist.
func binHz(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes every descriptor of magnitude, a linear (not dB)
// spectrum running from DC to Nyquist. Spectra shorter than two bins only
// fill BinCount, Peak and Energy.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	s := Stats{BinCount: len(magnitude), Peak_dB: math.Inf(-1)}
	if len(magnitude) == 0 {
		return s
	}

	peakBin := argMax(magnitude)
	s.Peak = magnitude[peakBin]
	s.Energy = f64.DotProduct(magnitude, magnitude)

	if s.Peak > 0 {
		s.Peak_dB = 20 * math.Log10(s.Peak)
	}

	if len(magnitude) < 2 {
		return s
	}

	s.PeakHz = binHz(peakBin, sampleRate, len(magnitude))
	s.Centroid = Centroid(magnitude, sampleRate)
	s.Spread = spread(magnitude, sampleRate, s.Centroid)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = Rolloff(magnitude, sampleRate, RolloffFraction)
	s.LowerEdge, s.UpperEdge = Edges(magnitude, sampleRate)
	s.Bandwidth = s.UpperEdge - s.LowerEdge

	return s
}

// Centroid returns the magnitude-weighted mean frequency.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := f64.Sum(magnitude)
	if sum == 0 {
		return 0
	}

	weighted := 0.0
	for i, v := range magnitude {
		weighted += binHz(i, sampleRate, n) * v
	}

	return weighted / sum
}

func spread(magnitude []float64, sampleRate, centroid float64) float64 {
	n := len(magnitude)

	sum := f64.Sum(magnitude)
	if sum == 0 {
		return 0
	}

	acc := 0.0
	for i, v := range magnitude {
		d := binHz(i, sampleRate, n) - centroid
		acc += d * d * v
	}

	return math.Sqrt(acc / sum)
}

// Flatness returns the ratio of geometric to arithmetic mean over every
// bin except DC. Any zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	bins := magnitude[1:]

	mean := f64.Sum(bins) / float64(len(bins))
	if mean == 0 {
		return 0
	}

	logSum := 0.0

	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		logSum += math.Log(v)
	}

	return math.Exp(logSum/float64(len(bins))) / mean
}

// Rolloff returns the lowest bin frequency below which fraction of the
// spectral energy lies.
func Rolloff(magnitude []float64, sampleRate, fraction float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	total := f64.DotProduct(magnitude, magnitude)
	if total == 0 {
		return 0
	}

	threshold := fraction * total
	acc := 0.0

	for i, v := range magnitude {
		acc += v * v
		if acc >= threshold {
			return binHz(i, sampleRate, n)
		}
	}

	return binHz(n-1, sampleRate, n)
}

// Edges returns the frequencies where the spectrum first falls to
// peak/sqrt(2) below and above the peak, interpolating linearly between
// bins. An all-zero spectrum returns 0, 0.
func Edges(magnitude []float64, sampleRate float64) (lower, upper float64) {
	n := len(magnitude)
	if n < 2 {
		return 0, 0
	}

	peakBin := argMax(magnitude)
	peak := magnitude[peakBin]

	if peak == 0 {
		return 0, 0
	}

	threshold := peak / math.Sqrt2
	lower = 0
	upper = binHz(n-1, sampleRate, n)

	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold {
			lower = crossing(i-1, i, magnitude, threshold, sampleRate)
			break
		}
	}

	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold {
			upper = crossing(i, i+1, magnitude, threshold, sampleRate)
			break
		}
	}

	return lower, upper
}

// crossing interpolates the frequency between bins a and b where the
// magnitude equals threshold.
func crossing(a, b int, magnitude []float64, threshold, sampleRate float64) float64 {
	n := len(magnitude)
	fa := binHz(a, sampleRate, n)
	fb := binHz(b, sampleRate, n)

	d := magnitude[b] - magnitude[a]
	if d == 0 {
		return (fa + fb) / 2
	}

	return fa + (threshold-magnitude[a])/d*(fb-fa)
}

func argMax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}

	return best
}
