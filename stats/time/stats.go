// Package time computes time-domain statistics of rendered float32 audio.
package time

import (
	"math"

	"github.com/tphakala/simd/f32"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
	Variance       float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass. Accumulation runs in
// float64 with Welford's update for the mean and variance.
func Calculate(signal []float32) Stats {
	s := NewStreamingStats()
	s.Update(signal)

	return s.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float32) float64 {
	if len(signal) == 0 {
		return 0
	}

	sumSq := f32.DotProductUnsafe(signal, signal)

	return math.Sqrt(float64(sumSq) / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float32) float64 {
	if len(signal) == 0 {
		return 0
	}

	return float64(f32.Sum(signal)) / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float32) float64 {
	var peak float64
	for _, x := range signal {
		peak = max(peak, math.Abs(float64(x)))
	}

	return peak
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float32) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// StreamingStats accumulates time-domain statistics incrementally across
// multiple blocks of samples. Feeding a signal in any block split gives
// the same result as [Calculate] on the whole signal.
type StreamingStats struct {
	n             int
	mean          float64
	m2            float64
	sumSq         float64
	maxVal        float64
	maxPos        int
	minVal        float64
	minPos        int
	zeroCrossings int
	lastSample    float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float32) {
	for _, v := range samples {
		x := float64(v)

		s.n++
		delta := x - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (x - s.mean)

		s.sumSq += x * x

		if s.n == 1 || x > s.maxVal {
			s.maxVal = x
			s.maxPos = s.n - 1
		}

		if s.n == 1 || x < s.minVal {
			s.minVal = x
			s.minPos = s.n - 1
		}

		if s.n > 1 && s.lastSample*x < 0 {
			s.zeroCrossings++
		}

		s.lastSample = x
	}
}

// Len returns the number of samples seen.
func (s *StreamingStats) Len() int { return s.n }

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = 20 * math.Log10(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             s.mean,
		DC_dB:          ampTodB(s.mean),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Max:            s.maxVal,
		MaxPos:         s.maxPos,
		Min:            s.minVal,
		MinPos:         s.minPos,
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         s.sumSq,
		ZeroCrossings:  s.zeroCrossings,
		Variance:       s.m2 / nf,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
