package spectrum

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	// ErrInvalidFrequency is returned for a frequency outside [0, rate/2].
	ErrInvalidFrequency = errors.New("spectrum: frequency must be between 0 and sampleRate/2")
)

// Goertzel evaluates a single DFT term of a float32 stream.
//
// The analyzer accumulates every sample processed since the last Reset.
// Power equals |X[k]|^2 of a DFT over the same samples. Leakage appears when
// the block does not hold an integer number of cycles; comparing two
// Goertzel results over equally long blocks of the same tone cancels it.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for frequency at sampleRate.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// Process accumulates one sample.
func (g *Goertzel) Process(x float32) {
	s := float64(x) + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
}

// ProcessBlock accumulates every sample of input.
func (g *Goertzel) ProcessBlock(input []float32) {
	s0, s1, coeff := g.s0, g.s1, g.coeff

	for _, x := range input {
		s := float64(x) + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the analyzed term.
func (g *Goertzel) Power() float64 {
	return max(g.s0*g.s0+g.s1*g.s1-g.coeff*g.s0*g.s1, 0)
}

// Magnitude returns the magnitude of the analyzed term.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// PowerDB returns the power in dB, floored at -300.
func (g *Goertzel) PowerDB() float64 {
	p := g.Power()
	if p <= 1e-30 {
		return -300
	}

	return 10 * math.Log10(p)
}

// Frequency returns the analyzed frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the sample rate.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// AnalyzeBlock returns the Goertzel power of input at frequency.
func AnalyzeBlock(input []float32, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Power(), nil
}
