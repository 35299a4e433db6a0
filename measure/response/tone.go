package response

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/spectrum"
)

// ToneConfig controls a steady-state tone measurement.
type ToneConfig struct {
	SampleRate float64
	// Amplitude of the test sine. Zero selects 0.5.
	Amplitude float64
	// Settle is the number of output samples discarded before analysis.
	// Zero selects a tenth of a second.
	Settle int
	// Length is the number of analyzed samples. Zero selects a tenth of a
	// second.
	Length int
}

// ToneGain drives fx with a sine at freq and returns the level of the
// output component at freq relative to the input, in dB. Only the
// fundamental is measured, so a nonlinear effect reports its gain at the
// chosen amplitude. fx is reset before and after the measurement.
func ToneGain(fx System, freq float64, cfg ToneConfig) (float64, error) {
	if fx == nil {
		return 0, ErrNilSystem
	}

	sr := cfg.SampleRate
	if sr <= 0 || math.IsNaN(sr) || math.IsInf(sr, 0) {
		return 0, ErrInvalidSampleRate
	}

	in, err := spectrum.NewGoertzel(freq, sr)
	if err != nil {
		return 0, err
	}

	out, _ := spectrum.NewGoertzel(freq, sr)

	amp := cfg.Amplitude
	if amp == 0 {
		amp = 0.5
	}

	tenth := max(int(sr/10), 1)

	settle := cfg.Settle
	if settle <= 0 {
		settle = tenth
	}

	length := cfg.Length
	if length <= 0 {
		length = tenth
	}

	fx.Reset()
	defer fx.Reset()

	step := 2 * math.Pi * freq / sr

	for i := range settle + length {
		x := float32(amp * math.Sin(step*float64(i)))
		y := fx.Process(x)

		if i >= settle {
			in.Process(x)
			out.Process(y)
		}
	}

	pin, pout := in.Power(), out.Power()
	if pin <= 0 || pout <= 0 {
		return FloorDB, nil
	}

	return math.Max(10*math.Log10(pout/pin), FloorDB), nil
}
