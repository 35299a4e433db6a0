package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer converts normalized samples in [-1, 1) to signed integers of a
// fixed bit depth. Full scale maps 1.0 to 2^(bits-1); results are clipped
// to [-2^(bits-1), 2^(bits-1)-1].
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	errorFeedback   bool
	rng             *rand.Rand

	scale     float64
	limitLo   int
	limitHi   int
	lastError float64
}

// NewQuantizer creates a new Quantizer. The default configuration is
// 16-bit, triangular dither of 1 LSB, no noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = rand.Uint64()
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		errorFeedback:   cfg.errorFeedback,
		rng:             rand.New(rand.NewPCG(seed, 0)),
	}

	q.scale = math.Ldexp(1, q.bitDepth-1)
	q.limitLo = -int(q.scale)
	q.limitHi = int(q.scale) - 1

	return q, nil
}

// ProcessInteger quantizes one sample. NaN is treated as silence.
func (q *Quantizer) ProcessInteger(input float32) int {
	x := float64(input)
	if math.IsNaN(x) {
		x = 0
	}

	scaled := x * q.scale
	if q.errorFeedback {
		scaled -= q.lastError
	}

	v := math.Round(scaled + q.noise())
	v = math.Max(float64(q.limitLo), math.Min(float64(q.limitHi), v))

	if q.errorFeedback {
		q.lastError = v - scaled
	}

	return int(v)
}

// ProcessSample quantizes input and returns it normalized back to [-1, 1).
func (q *Quantizer) ProcessSample(input float32) float32 {
	return float32(float64(q.ProcessInteger(input)) / q.scale)
}

// ProcessBlock quantizes src into dst. It processes min(len(dst), len(src))
// samples and returns that count.
func (q *Quantizer) ProcessBlock(dst []int, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = q.ProcessInteger(src[i])
	}

	return n
}

// Reset clears the noise-shaping error history.
func (q *Quantizer) Reset() {
	q.lastError = 0
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	case DitherGaussian:
		return q.ditherAmplitude * 0.5 * q.rng.NormFloat64()
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the dither noise amplitude in LSB.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }

// ErrorFeedback reports whether noise shaping is enabled.
func (q *Quantizer) ErrorFeedback() bool { return q.errorFeedback }
