package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sampler/dsp/core"
)

// ErrUnknownWaveform is returned by Generate for an unsupported waveform name.
var ErrUnknownWaveform = errors.New("unknown waveform")

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if err := g.check("sine", samples); err != nil {
		return nil, err
	}

	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out, nil
}

// Saw generates a naive rising sawtooth in [-amplitude, amplitude).
func (g *Generator) Saw(freqHz, amplitude float64, samples int) ([]float32, error) {
	if err := g.check("saw", samples); err != nil {
		return nil, err
	}

	out := make([]float32, samples)
	inc := freqHz / g.cfg.SampleRate
	phase := 0.0

	for i := range out {
		out[i] = float32(amplitude * (2*phase - 1))

		phase += inc
		phase -= math.Floor(phase)
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float32, error) {
	if err := g.check("noise", samples); err != nil {
		return nil, err
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float32, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}

	return out, nil
}

// Impulse generates a single sample of the given amplitude followed by zeros.
func (g *Generator) Impulse(amplitude float64, samples int) ([]float32, error) {
	if err := g.check("impulse", samples); err != nil {
		return nil, err
	}

	out := make([]float32, samples)
	out[0] = float32(amplitude)

	return out, nil
}

// Waveforms returns the names accepted by Generate.
func Waveforms() []string {
	return []string{"sine", "saw", "noise", "impulse"}
}

// Generate dispatches on a waveform name: "sine", "saw", "noise" or
// "impulse". freqHz is ignored by noise and impulse.
func (g *Generator) Generate(waveform string, freqHz, amplitude float64, samples int) ([]float32, error) {
	switch waveform {
	case "sine":
		return g.Sine(freqHz, amplitude, samples)
	case "saw":
		return g.Saw(freqHz, amplitude, samples)
	case "noise":
		return g.WhiteNoise(amplitude, samples)
	case "impulse":
		return g.Impulse(amplitude, samples)
	default:
		return nil, fmt.Errorf("signal: %w: %q", ErrUnknownWaveform, waveform)
	}
}

func (g *Generator) check(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}

	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", kind, g.cfg.SampleRate)
	}

	return nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float32, targetPeak float64) ([]float32, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, errors.New("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = max(maxAbs, math.Abs(float64(v)))
	}

	out := make([]float32, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = float32(float64(v) * scale)
	}

	return out, nil
}
