package effects

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/core"
	"github.com/cwbudde/algo-sampler/dsp/filter/biquad"
)

const (
	minFilterCutoff     = 20.0
	maxCutoffRatio      = 0.49
	minFilterResonance  = 0.1
	maxFilterResonance  = 20.0
	defaultFilterCutoff = 1000.0
	defaultResonance    = 0.707
)

// FilterType selects the biquad response of a Filter.
type FilterType int

const (
	LowPass FilterType = iota
	HighPass
	BandPass
	Notch
)

// FilterTypeFromCode maps a numeric selector to a FilterType.
// Codes outside 0..3 select LowPass.
func FilterTypeFromCode(code float32) FilterType {
	switch c := core.TypeCode(code); c {
	case 1, 2, 3:
		return FilterType(c)
	default:
		return LowPass
	}
}

func (t FilterType) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case Notch:
		return "notch"
	default:
		return "unknown"
	}
}

// Filter is a resonant two-pole filter with four response types.
// Coefficients are redesigned on every parameter change, so Process never
// runs with coefficients that disagree with the current settings.
type Filter struct {
	typ        FilterType
	cutoff     float32
	resonance  float32
	sampleRate float32

	section biquad.Section
}

// NewFilter creates a filter. Cutoff is clamped to [20, 0.49*sampleRate]
// and resonance to [0.1, 20]. Below a 40.8 Hz sample rate the upper bound
// takes precedence.
func NewFilter(typ FilterType, cutoff, resonance, sampleRate float32) *Filter {
	f := &Filter{
		typ:        typ,
		sampleRate: sanitizeSampleRate(sampleRate),
	}
	if typ < LowPass || typ > Notch {
		f.typ = LowPass
	}

	f.cutoff = f.clampCutoff(cutoff)
	f.resonance = core.Clamp32(resonance, minFilterResonance, maxFilterResonance)
	f.update()

	return f
}

// NewDefaultFilter returns a 1 kHz Butterworth low-pass.
func NewDefaultFilter(sampleRate float32) *Filter {
	return NewFilter(LowPass, defaultFilterCutoff, defaultResonance, sampleRate)
}

// Process filters one sample.
func (f *Filter) Process(sample float32) float32 {
	return f.section.ProcessSample(sample)
}

// Reset zeroes the filter history.
func (f *Filter) Reset() {
	f.section.Reset()
}

// SetParameter handles "cutoff", "resonance" and "type".
func (f *Filter) SetParameter(name string, value float32) bool {
	switch name {
	case "cutoff":
		f.SetCutoff(value)
	case "resonance":
		f.SetResonance(value)
	case "type":
		f.SetType(FilterTypeFromCode(value))
	default:
		return false
	}

	return true
}

// Name returns "Filter".
func (f *Filter) Name() string { return "Filter" }

// SetCutoff sets the corner or center frequency in Hz.
func (f *Filter) SetCutoff(hz float32) {
	f.cutoff = f.clampCutoff(hz)
	f.update()
}

// SetResonance sets the Q of the section.
func (f *Filter) SetResonance(q float32) {
	f.resonance = core.Clamp32(q, minFilterResonance, maxFilterResonance)
	f.update()
}

// SetType switches the response type. Unknown types select LowPass.
func (f *Filter) SetType(typ FilterType) {
	if typ < LowPass || typ > Notch {
		typ = LowPass
	}

	f.typ = typ
	f.update()
}

// Type returns the response type.
func (f *Filter) Type() FilterType { return f.typ }

// Cutoff returns the clamped cutoff in Hz.
func (f *Filter) Cutoff() float32 { return f.cutoff }

// Resonance returns the clamped Q.
func (f *Filter) Resonance() float32 { return f.resonance }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float32 { return f.sampleRate }

// Coefficients returns the normalized coefficients in use.
func (f *Filter) Coefficients() biquad.Coefficients {
	return f.section.Coefficients()
}

// clampCutoff applies the Nyquist bound last so that it wins when the
// sample rate is too low to fit the 20 Hz floor.
func (f *Filter) clampCutoff(hz float32) float32 {
	if math.IsNaN(float64(hz)) || hz < minFilterCutoff {
		hz = minFilterCutoff
	}

	return min(hz, maxCutoffRatio*f.sampleRate)
}

func (f *Filter) update() {
	fc := float64(f.cutoff)
	q := float64(f.resonance)
	sr := float64(f.sampleRate)

	var c biquad.Coefficients

	switch f.typ {
	case HighPass:
		c = biquad.HighPass(fc, q, sr)
	case BandPass:
		c = biquad.BandPass(fc, q, sr)
	case Notch:
		c = biquad.Notch(fc, q, sr)
	default:
		c = biquad.LowPass(fc, q, sr)
	}

	f.section.SetCoefficients(c)
}
