package resample

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrUnknownQuality is returned by ParseQuality for unknown names.
	ErrUnknownQuality = errors.New("resample: unknown quality")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

var qualityNames = map[Quality]string{
	QualityFast:     "fast",
	QualityBalanced: "balanced",
	QualityBest:     "best",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}

	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality maps "fast", "balanced" or "best" to a Quality.
func ParseQuality(name string) (Quality, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for q, n := range qualityNames {
		if n == name {
			return q, nil
		}
	}

	return QualityBalanced, fmt.Errorf("%w: %q", ErrUnknownQuality, name)
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	maxDen       int
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 4096}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = QualityProfile(cfg.quality).TapsPerPhase
	}

	return cfg
}

// Resampler performs rational sample-rate conversion using a polyphase FIR.
type Resampler struct {
	up   int
	down int

	quality Quality

	phases     [][]float64
	maxPhaseLn int
	latency    int

	phase      int
	inputIndex int
	totalIn    int
	history    []float32
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)

	phases, maxPhaseLn, err := designPolyphase(up, down, cfg)
	if err != nil {
		return nil, err
	}

	center := 0.5 * float64(cfg.tapsPerPhase*up-1)

	return &Resampler{
		up:         up,
		down:       down,
		quality:    cfg.quality,
		phases:     phases,
		maxPhaseLn: maxPhaseLn,
		latency:    int(math.Round(center / float64(down))),
		history:    make([]float32, 0, max(0, maxPhaseLn-1)),
	}, nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, ErrInvalidRate
	}

	cfg := newConfig(opts)
	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// Convert resamples a complete signal from inRate to outRate. The filter
// delay is removed, so the result is time-aligned with input and holds
// round(len(input)*outRate/inRate) samples. Equal rates return a copy.
func Convert(input []float32, inRate, outRate float64, opts ...Option) ([]float32, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, ErrInvalidRate
	}

	want := int(math.Round(float64(len(input)) * outRate / inRate))

	if inRate == outRate {
		return append([]float32(nil), input...), nil
	}

	r, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	out := r.Process(input)
	for len(out) < r.latency+want {
		out = append(out, r.Process(make([]float32, r.maxPhaseLn+1))...)
	}

	return out[r.latency : r.latency+want], nil
}

// Reset clears internal filter state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.inputIndex = 0
	r.totalIn = 0
	r.history = r.history[:0]
}

// Process converts an input block and preserves internal state for streaming.
func (r *Resampler) Process(input []float32) []float32 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float32, 0, r.PredictOutputLen(len(input)))

	work := make([]float32, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	baseIndex := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	for r.inputIndex <= lastAvail {
		var y float64

		for k, c := range r.phases[r.phase] {
			idx := r.inputIndex - k
			if idx < baseIndex {
				break
			}

			y += c * float64(work[idx-baseIndex])
		}

		out = append(out, float32(y))

		r.phase += r.down
		r.inputIndex += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.maxPhaseLn-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// PredictOutputLen returns the number of samples the next Process call
// produces for inputLen input samples.
func (r *Resampler) PredictOutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	lastAvail := r.totalIn + inputLen - 1
	i := r.inputIndex
	phase := r.phase

	count := 0
	for i <= lastAvail {
		count++
		phase += r.down
		i += phase / r.up
		phase %= r.up
	}

	return count
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// Latency returns the filter delay in output samples.
func (r *Resampler) Latency() int {
	return r.latency
}

// TapsPerPhase returns taps in each polyphase branch for phase 0.
func (r *Resampler) TapsPerPhase() int {
	if len(r.phases) == 0 {
		return 0
	}

	return len(r.phases[0])
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
