package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// ErrInvalidInput is returned when slice arguments are empty, of unequal
// length or not strictly increasing where required.
var ErrInvalidInput = errors.New("spectrum: invalid input")

// Phase returns arg(X[k]) for each bin in radians.
func Phase(in []complex128) []float64 {
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// UnwrapPhase returns a copy of phase with +/-2*pi jumps removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		switch d := phase[i] - phase[i-1]; {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

// GroupDelay returns the group delay in samples of an unwrapped phase taken
// over the uniformly spaced bins of an fftSize-point FFT. Interior bins use
// a centered difference, the end points a one-sided one.
func GroupDelay(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("%w: group delay needs at least 2 points, got %d", ErrInvalidInput, len(unwrapped))
	}

	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: fft size must be > 0: %d", ErrInvalidInput, fftSize)
	}

	dw := 2 * math.Pi / float64(fftSize)
	last := len(unwrapped) - 1
	out := make([]float64, len(unwrapped))

	for i := range unwrapped {
		var dphi float64

		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case last:
			dphi = unwrapped[last] - unwrapped[last-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}

		out[i] = -dphi / dw
	}

	return out, nil
}

// InterpolateLinear evaluates the piecewise-linear curve through (x, y) at
// every query point. Queries outside the range of x take the end values.
// x must be strictly increasing.
func InterpolateLinear(x, y, query []float64) ([]float64, error) {
	if err := checkAxis(x, y); err != nil {
		return nil, err
	}

	out := make([]float64, len(query))

	for i, q := range query {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[len(x)-1]:
			out[i] = y[len(y)-1]
		default:
			j := sort.SearchFloat64s(x, q)
			t := (q - x[j-1]) / (x[j] - x[j-1])
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}

	return out, nil
}

// SmoothFractionalOctave replaces every value by the arithmetic mean of the
// values within 1/fraction octave centered on its frequency. freqHz must be
// positive and strictly increasing.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if err := checkAxis(freqHz, values); err != nil {
		return nil, err
	}

	if fraction <= 0 {
		return nil, fmt.Errorf("%w: octave fraction must be > 0: %d", ErrInvalidInput, fraction)
	}

	if freqHz[0] <= 0 {
		return nil, fmt.Errorf("%w: frequencies must be > 0", ErrInvalidInput)
	}

	halfBand := math.Pow(2, 1/(2*float64(fraction)))
	out := make([]float64, len(values))

	for i, f := range freqHz {
		lo := sort.SearchFloat64s(freqHz, f/halfBand)
		hi := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > f*halfBand })

		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}

		out[i] = sum / float64(hi-lo)
	}

	return out, nil
}

func checkAxis(x, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("%w: need equal non-empty slices, got %d and %d", ErrInvalidInput, len(x), len(y))
	}

	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("%w: x must be strictly increasing at index %d", ErrInvalidInput, i)
		}
	}

	return nil
}
