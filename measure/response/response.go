package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sampler/dsp/spectrum"
	"github.com/cwbudde/algo-sampler/stats/frequency"
)

// DefaultFFTSize is the analysis length used when Config.FFTSize is zero.
const DefaultFFTSize = 8192

// FloorDB is reported for bins whose magnitude is zero.
const FloorDB = -240.0

var (
	// ErrNilSystem is returned when Analyze is called without a system.
	ErrNilSystem = errors.New("response: nil system")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
	// ErrInvalidFFTSize is returned when the FFT size is not a power of two >= 16.
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 16")
)

// System is a per-sample processor with resettable state. Every
// effects.Effect is a System.
type System interface {
	Process(sample float32) float32
	Reset()
}

// Config controls a response measurement.
type Config struct {
	SampleRate float64
	FFTSize    int
	// Amplitude of the test impulse. Zero selects 1.
	Amplitude float64
}

// Result holds the one-sided magnitude response of an effect.
type Result struct {
	SampleRate float64
	FFTSize    int
	// Impulse is the captured impulse response, already divided by the
	// impulse amplitude.
	Impulse []float64
	// Magnitude holds |H(k)| for bins 0..FFTSize/2.
	Magnitude []float64
	// MagnitudeDB holds 20*log10(|H(k)|), floored at FloorDB.
	MagnitudeDB []float64
	// Phase holds the unwrapped phase of H(k) in radians.
	Phase []float64
	// GroupDelay holds the group delay of every bin in samples.
	GroupDelay []float64
}

// BinHz returns the frequency spacing between adjacent bins.
func (r Result) BinHz() float64 {
	if r.FFTSize == 0 {
		return 0
	}

	return r.SampleRate / float64(r.FFTSize)
}

// Frequency returns the center frequency of bin k.
func (r Result) Frequency(k int) float64 {
	return float64(k) * r.BinHz()
}

// At returns the response in dB at freq, interpolating linearly between the
// two nearest bins. Frequencies outside [0, Nyquist] are clamped.
func (r Result) At(freq float64) float64 {
	last := len(r.MagnitudeDB) - 1
	if last < 0 {
		return FloorDB
	}

	binHz := r.BinHz()
	if binHz <= 0 || math.IsNaN(freq) || freq <= 0 {
		return r.MagnitudeDB[0]
	}

	bin := freq / binHz
	if bin >= float64(last) {
		return r.MagnitudeDB[last]
	}

	base := int(bin)
	frac := bin - float64(base)
	d0 := r.MagnitudeDB[base]
	d1 := r.MagnitudeDB[base+1]

	return d0 + frac*(d1-d0)
}

// PhaseAt returns the unwrapped phase in radians at freq, interpolated
// linearly between bins.
func (r Result) PhaseAt(freq float64) float64 {
	return r.interpolate(r.Phase, freq)
}

// DelayAt returns the group delay in seconds at freq, interpolated linearly
// between bins.
func (r Result) DelayAt(freq float64) float64 {
	if r.SampleRate <= 0 {
		return 0
	}

	return r.interpolate(r.GroupDelay, freq) / r.SampleRate
}

func (r Result) interpolate(values []float64, freq float64) float64 {
	if len(values) == 0 {
		return 0
	}

	freqs := make([]float64, len(values))
	for k := range freqs {
		freqs[k] = r.Frequency(k)
	}

	out, err := spectrum.InterpolateLinear(freqs, values, []float64{freq})
	if err != nil {
		return values[0]
	}

	return out[0]
}

// Summary returns shape descriptors of the magnitude response, such as its
// -3 dB edges and spectral centroid.
func (r Result) Summary() frequency.Stats {
	return frequency.Calculate(r.Magnitude, r.SampleRate)
}

// Smooth returns a copy of r whose magnitude is averaged over 1/fraction
// octave bands. DC is left untouched. Phase and group delay are kept.
func (r Result) Smooth(fraction int) (Result, error) {
	if len(r.Magnitude) < 2 {
		return r, nil
	}

	freqs := make([]float64, len(r.Magnitude)-1)
	for k := range freqs {
		freqs[k] = r.Frequency(k + 1)
	}

	smoothed, err := spectrum.SmoothFractionalOctave(freqs, r.Magnitude[1:], fraction)
	if err != nil {
		return Result{}, fmt.Errorf("response: smooth: %w", err)
	}

	out := r
	out.Magnitude = append([]float64{r.Magnitude[0]}, smoothed...)
	out.MagnitudeDB = toDB(out.Magnitude)

	return out, nil
}

// Peak returns the frequency and level of the loudest bin.
func (r Result) Peak() (freq, db float64) {
	if len(r.MagnitudeDB) == 0 {
		return 0, FloorDB
	}

	best := 0
	for k, v := range r.MagnitudeDB {
		if v > r.MagnitudeDB[best] {
			best = k
		}
	}

	return r.Frequency(best), r.MagnitudeDB[best]
}

// Analyze resets fx, feeds it a single impulse followed by silence and
// returns the magnitude response of the captured output. fx is reset again
// before returning so the measurement leaves no state behind.
func Analyze(fx System, cfg Config) (Result, error) {
	if fx == nil {
		return Result{}, ErrNilSystem
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return Result{}, ErrInvalidSampleRate
	}

	fftSize := cfg.FFTSize
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}

	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	amp := cfg.Amplitude
	if amp == 0 {
		amp = 1
	}

	fx.Reset()
	defer fx.Reset()

	ir := make([]float64, fftSize)
	inData := make([]complex128, fftSize)

	for i := range ir {
		var x float32
		if i == 0 {
			x = float32(amp)
		}

		ir[i] = float64(fx.Process(x)) / amp
		inData[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("response: create fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	phase := spectrum.UnwrapPhase(spectrum.Phase(out[:bins]))

	delay, err := spectrum.GroupDelay(phase, fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("response: group delay: %w", err)
	}

	return Result{
		SampleRate:  cfg.SampleRate,
		FFTSize:     fftSize,
		Impulse:     ir,
		Magnitude:   mag,
		MagnitudeDB: toDB(mag),
		Phase:       phase,
		GroupDelay:  delay,
	}, nil
}

func toDB(mag []float64) []float64 {
	db := make([]float64, len(mag))
	for k, m := range mag {
		if m <= 0 {
			db[k] = FloorDB
			continue
		}

		db[k] = math.Max(20*math.Log10(m), FloorDB)
	}

	return db
}
