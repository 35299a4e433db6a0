package biquad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSampleRate = 48000.0

func TestCookbookDesigns_MagnitudeShape(t *testing.T) {
	t.Parallel()

	const fc = 1000.0

	tests := []struct {
		name   string
		coeffs Coefficients
		low    float64 // dB at 20 Hz
		center float64 // dB at fc
		high   float64 // dB at 20 kHz
	}{
		{name: "lowpass", coeffs: LowPass(fc, math.Sqrt2/2, testSampleRate), low: 0, center: -3.01, high: -60},
		{name: "highpass", coeffs: HighPass(fc, math.Sqrt2/2, testSampleRate), low: -60, center: -3.01, high: 0},
		{name: "bandpass", coeffs: BandPass(fc, 1, testSampleRate), low: -30, center: 0, high: -30},
		{name: "notch", coeffs: Notch(fc, 1, testSampleRate), low: 0, center: math.Inf(-1), high: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.coeffs.Stable())

			low := tt.coeffs.MagnitudeDB(20, testSampleRate)
			center := tt.coeffs.MagnitudeDB(fc, testSampleRate)
			high := tt.coeffs.MagnitudeDB(20000, testSampleRate)

			if tt.low == 0 {
				assert.InDelta(t, 0, low, 0.1, "20 Hz")
			} else {
				assert.Less(t, low, tt.low, "20 Hz")
			}

			if math.IsInf(tt.center, -1) {
				assert.Less(t, center, -100.0, "center")
			} else {
				assert.InDelta(t, tt.center, center, 0.05, "center")
			}

			if tt.high == 0 {
				assert.InDelta(t, 0, high, 0.1, "20 kHz")
			} else {
				assert.Less(t, high, tt.high, "20 kHz")
			}
		})
	}
}

func TestLowPass_UnityDCGain(t *testing.T) {
	t.Parallel()

	c := LowPass(300, 4, 44100)
	dc := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
	assert.InDelta(t, 1, dc, 1e-12)
}

func TestHighPass_ZeroDCGain(t *testing.T) {
	t.Parallel()

	c := HighPass(300, 4, 44100)
	assert.InDelta(t, 0, c.B0+c.B1+c.B2, 1e-12)
}

func TestStable_RejectsPolesOutsideUnitCircle(t *testing.T) {
	t.Parallel()

	unstable := Coefficients{B0: 1, A1: -2.5, A2: 1.2}
	assert.False(t, unstable.Stable())
}

func TestHighShelf(t *testing.T) {
	t.Parallel()

	c := HighShelf(1500, 4, math.Sqrt2/2, testSampleRate)

	assert.True(t, c.Stable())
	assert.InDelta(t, 0, c.MagnitudeDB(20, testSampleRate), 0.05)
	assert.InDelta(t, 0.669, c.MagnitudeDB(1000, testSampleRate), 0.05)
	assert.InDelta(t, 4, c.MagnitudeDB(20000, testSampleRate), 0.1)

	flat := HighShelf(1500, 0, math.Sqrt2/2, testSampleRate)
	assert.InDelta(t, 0, flat.MagnitudeDB(5000, testSampleRate), 1e-9)
}
