// Package thd measures harmonic distortion of per-sample effects.
//
// Measure drives a system with a bin-centered sine, windows the settled
// output (periodic Hann unless configured otherwise) and compares the
// harmonic bins with the fundamental. CalculateFromMagnitude exposes the spectral evaluation on its
// own for callers that already hold a power spectrum.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sampler/dsp/window"
	"github.com/cwbudde/algo-sampler/measure/response"
)

const (
	defaultFFTSize      = 8192
	defaultAmplitude    = 0.5
	defaultRangeLowerHz = 20.0
	defaultRangeUpperHz = 20000.0
)

var (
	// ErrNilSystem is returned when Measure is called without a system.
	ErrNilSystem = errors.New("thd: nil system")
	// ErrInvalidConfig is returned for unusable measurement settings.
	ErrInvalidConfig = errors.New("thd: invalid config")
)

// Config holds THD measurement parameters.
type Config struct {
	SampleRate      float64
	FFTSize         int
	FundamentalFreq float64
	// Amplitude of the test tone fed by Measure. Zero selects 0.5.
	Amplitude float64
	// Settle is the number of ticks discarded before capture. Zero selects
	// FFTSize/2.
	Settle         int
	RangeLowerFreq float64
	RangeUpperFreq float64
	// Window applied before the FFT. The zero value selects Hann.
	Window window.Type
	// CaptureBins is the number of neighbor bins summed on each side of a
	// tone. Zero selects the main lobe half-width of Window.
	CaptureBins  int
	MaxHarmonics int
}

// Result holds THD measurement results. Ratios are relative to the
// fundamental level.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	Noise            float64
	SINAD            float64
	// Harmonics[i] is the level of harmonic i+2.
	Harmonics []float64
}

// Calculator evaluates distortion from power spectra.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a new THD calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// Measure resets sys, plays a sine through it and analyzes the settled
// output. The tone is moved to the nearest bin center so the window leaks
// into the capture bins only. sys is reset again before returning.
func Measure(sys response.System, cfg Config) (Result, error) {
	if sys == nil {
		return Result{}, ErrNilSystem
	}

	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return Result{}, fmt.Errorf("%w: sample rate %g", ErrInvalidConfig, cfg.SampleRate)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.FFTSize < 64 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return Result{}, fmt.Errorf("%w: fft size %d is not a power of two >= 64", ErrInvalidConfig, cfg.FFTSize)
	}

	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	bin := int(math.Round(cfg.FundamentalFreq / binHz))

	lobe := window.Info(cfg.Window).MainLobeBins
	if lobe == 0 {
		return Result{}, fmt.Errorf("%w: window %v", ErrInvalidConfig, cfg.Window)
	}

	if bin < 2*lobe || bin >= cfg.FFTSize/4 {
		return Result{}, fmt.Errorf("%w: fundamental %g Hz outside (%g, %g) Hz",
			ErrInvalidConfig, cfg.FundamentalFreq, float64(2*lobe)*binHz, cfg.SampleRate/4)
	}

	cfg.FundamentalFreq = float64(bin) * binHz

	amp := cfg.Amplitude
	if amp == 0 {
		amp = defaultAmplitude
	}

	settle := cfg.Settle
	if settle <= 0 {
		settle = cfg.FFTSize / 2
	}

	sys.Reset()
	defer sys.Reset()

	step := 2 * math.Pi * float64(bin) / float64(cfg.FFTSize)
	capture := make([]float32, cfg.FFTSize)

	for i := range settle + cfg.FFTSize {
		y := sys.Process(float32(amp * math.Sin(step*float64(i))))
		if i >= settle {
			capture[i-settle] = y
		}
	}

	return NewCalculator(cfg).AnalyzeSignal(capture)
}

// AnalyzeSignal windows signal, transforms it and evaluates the spectrum.
// Signals shorter than the FFT size are zero-padded.
func (c *Calculator) AnalyzeSignal(signal []float32) (Result, error) {
	if len(signal) == 0 {
		return Result{}, nil
	}

	cfg := c.cfg

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < len(signal) {
		return Result{}, fmt.Errorf("%w: signal of %d samples exceeds fft size %d", ErrInvalidConfig, len(signal), fftSize)
	}

	inData := make([]complex128, fftSize)
	coeffs := window.Generate(cfg.Window, len(signal), window.WithPeriodic())

	for i, x := range signal {
		inData[i] = complex(float64(x)*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("thd: create fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, fmt.Errorf("thd: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	magSquared := make([]float64, bins)
	vecmath.Power(magSquared, re, im)

	cfg.FFTSize = fftSize
	calc := Calculator{cfg: cfg}

	return calc.CalculateFromMagnitude(magSquared), nil
}

// CalculateFromMagnitude computes THD metrics from a squared-magnitude spectrum.
// magSquared is expected to contain non-negative-frequency bins [0..Nyquist].
//
//nolint:cyclop
func (c *Calculator) CalculateFromMagnitude(magSquared []float64) Result {
	if len(magSquared) <= 1 {
		return Result{}
	}

	cfg := c.cfg
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 2 * (len(magSquared) - 1)
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(cfg.FFTSize)
	}

	maxBin := len(magSquared) - 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	lowerBin := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := c.findFundamentalBin(magSquared, lowerBin, upperBin, binHz)

	captureBins := min(cfg.CaptureBins, fundamentalBin/2)

	fundamentalLevel := binLevel(magSquared, fundamentalBin, captureBins)
	if fundamentalLevel <= 0 {
		return Result{FundamentalFreq: float64(fundamentalBin) * binHz}
	}

	var thdAbs, oddAbs, evenAbs float64

	harmonics := make([]float64, 0, 8)

	for k := 2; cfg.MaxHarmonics == 0 || k-1 <= cfg.MaxHarmonics; k++ {
		bin := k * fundamentalBin
		if bin > upperBin {
			break
		}

		value := binLevel(magSquared, bin, captureBins)

		thdAbs += value
		if k%2 == 0 {
			evenAbs += value
		} else {
			oddAbs += value
		}

		harmonics = append(harmonics, value/fundamentalLevel)
	}

	totalAbs := 0.0
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += sqrtPositive(magSquared[i])
	}

	thdnAbs := math.Max(totalAbs-fundamentalLevel, 0)
	noiseAbs := math.Max(thdnAbs-thdAbs, 0)

	thd := thdAbs / fundamentalLevel
	thdn := thdnAbs / fundamentalLevel

	sinad := math.Inf(1)
	if thdn > 0 {
		sinad = 20 * math.Log10(1/thdn)
	}

	return Result{
		FundamentalFreq:  float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamentalLevel,
		THD:              thd,
		THDN:             thdn,
		THD_dB:           ratioToDB(thd),
		THDN_dB:          ratioToDB(thdn),
		OddHD:            oddAbs / fundamentalLevel,
		EvenHD:           evenAbs / fundamentalLevel,
		Noise:            noiseAbs / fundamentalLevel,
		Harmonics:        harmonics,
		SINAD:            sinad,
	}
}

func (c *Calculator) findFundamentalBin(magSquared []float64, lowerBin, upperBin int, binHz float64) int {
	if c.cfg.FundamentalFreq > 0 {
		bin := int(math.Round(c.cfg.FundamentalFreq / binHz))
		return clampInt(bin, lowerBin, upperBin)
	}

	bestBin := lowerBin
	bestVal := -1.0

	for i := lowerBin; i <= upperBin; i++ {
		if v := magSquared[i]; v > bestVal {
			bestVal = v
			bestBin = i
		}
	}

	return bestBin
}

func normalizeConfig(cfg Config) Config {
	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultRangeLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultRangeUpperHz
	}

	if cfg.RangeUpperFreq < cfg.RangeLowerFreq {
		cfg.RangeUpperFreq = cfg.RangeLowerFreq
	}

	if !cfg.Window.Valid() {
		cfg.Window = window.TypeHann
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = window.Info(cfg.Window).MainLobeBins
	}

	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}

	return cfg
}

// binLevel sums the magnitudes of bin and its captureBins neighbors.
func binLevel(magSquared []float64, bin, captureBins int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(magSquared)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += sqrtPositive(magSquared[i])
	}

	return sum
}

func sqrtPositive(v float64) float64 {
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
