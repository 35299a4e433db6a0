// Package loudness measures programme loudness of a mono render following
// ITU-R BS.1770 and EBU R128: K-weighting, momentary and short-term sliding
// windows, and gated integrated loudness.
package loudness

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/filter/biquad"
)

const (
	// K-weighting filter parameters from BS.1770.
	kWeightingShelfFreq = 1500.0
	kWeightingShelfGain = 4.0

	kWeightingHpfFreq = 38.0

	// Integration window durations in seconds.
	momentaryDuration = 0.4
	shortTermDuration = 3.0

	// Gating parameters.
	absThreshold    = -70.0
	relThreshold    = -10.0
	blockOverlap    = 0.75
	blockStepFactor = 1.0 - blockOverlap

	// Floor reported for silence.
	silenceLUFS = -120.0
)

// Meter implements EBU R128 / ITU-R BS.1770 loudness metering for a single
// channel.
type Meter struct {
	sampleRate float64

	shelf *biquad.Section
	hpf   *biquad.Section

	momWindowSamples   int
	shortWindowSamples int
	momHistory         []float64 // squared K-weighted samples
	shortHistory       []float64
	momWriteIdx        int
	shortWriteIdx      int
	momSum             float64
	shortSum           float64

	integrationRunning bool
	integratedSamples  int64
	blockSamplesStep   int
	samplesSinceStep   int

	// Mean square of each full 400 ms gating block.
	blocks []float64

	peak float64
}

// NewMeter creates a new loudness meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{sampleRate: cfg.SampleRate}
	m.reconfigure()

	return m
}

func (m *Meter) reconfigure() {
	q := 1.0 / math.Sqrt(2)
	m.shelf = biquad.NewSection(biquad.HighShelf(kWeightingShelfFreq, kWeightingShelfGain, q, m.sampleRate))
	m.hpf = biquad.NewSection(biquad.HighPass(kWeightingHpfFreq, q, m.sampleRate))

	m.momWindowSamples = max(int(math.Round(momentaryDuration*m.sampleRate)), 1)
	m.shortWindowSamples = max(int(math.Round(shortTermDuration*m.sampleRate)), 1)
	m.momHistory = make([]float64, m.momWindowSamples)
	m.shortHistory = make([]float64, m.shortWindowSamples)

	m.blockSamplesStep = max(int(math.Round(momentaryDuration*blockStepFactor*m.sampleRate)), 1)

	m.Reset()
}

// SampleRate returns the rate the K-weighting filters were designed for.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// Reset clears all integration state and the peak value. Integration keeps
// its running flag.
func (m *Meter) Reset() {
	m.shelf.Reset()
	m.hpf.Reset()

	clear(m.momHistory)
	clear(m.shortHistory)

	m.momWriteIdx = 0
	m.shortWriteIdx = 0
	m.momSum = 0
	m.shortSum = 0
	m.samplesSinceStep = 0
	m.integratedSamples = 0
	m.blocks = nil
	m.peak = 0
}

// StartIntegration starts accumulating blocks for integrated loudness.
func (m *Meter) StartIntegration() {
	m.integrationRunning = true
}

// StopIntegration stops accumulating blocks for integrated loudness.
func (m *Meter) StopIntegration() {
	m.integrationRunning = false
}

// Process feeds one sample.
func (m *Meter) Process(x float32) {
	if abs := math.Abs(float64(x)); abs > m.peak {
		m.peak = abs
	}

	k := float64(m.hpf.ProcessSample(m.shelf.ProcessSample(x)))
	sq := k * k

	m.momSum += sq - m.momHistory[m.momWriteIdx]
	m.momHistory[m.momWriteIdx] = sq
	m.momSum = max(m.momSum, 0)

	m.shortSum += sq - m.shortHistory[m.shortWriteIdx]
	m.shortHistory[m.shortWriteIdx] = sq
	m.shortSum = max(m.shortSum, 0)

	m.momWriteIdx = (m.momWriteIdx + 1) % m.momWindowSamples
	m.shortWriteIdx = (m.shortWriteIdx + 1) % m.shortWindowSamples

	if !m.integrationRunning {
		return
	}

	m.integratedSamples++
	m.samplesSinceStep++

	if m.samplesSinceStep < m.blockSamplesStep {
		return
	}

	m.samplesSinceStep = 0

	// Partially filled blocks at the start would bias the result low.
	if m.integratedSamples >= int64(m.momWindowSamples) {
		m.blocks = append(m.blocks, m.momSum/float64(m.momWindowSamples))
	}
}

// ProcessBlock feeds every sample of block in order.
func (m *Meter) ProcessBlock(block []float32) {
	for _, x := range block {
		m.Process(x)
	}
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.momSum / float64(m.momWindowSamples))
}

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 {
	return toLUFS(m.shortSum / float64(m.shortWindowSamples))
}

// Integrated returns the gated integrated loudness in LUFS since
// StartIntegration. It returns -Inf when no block passes the gates.
func (m *Meter) Integrated() float64 {
	var (
		absSum   float64
		absCount int
	)

	for _, b := range m.blocks {
		if toLUFS(b) > absThreshold {
			absSum += b
			absCount++
		}
	}

	if absCount == 0 {
		return math.Inf(-1)
	}

	gammaRel := toLUFS(absSum/float64(absCount)) + relThreshold

	var (
		relSum   float64
		relCount int
	)

	for _, b := range m.blocks {
		if l := toLUFS(b); l > absThreshold && l > gammaRel {
			relSum += b
			relCount++
		}
	}

	if relCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relSum / float64(relCount))
}

// Blocks returns the number of gating blocks collected so far.
func (m *Meter) Blocks() int { return len(m.blocks) }

// Peak returns the largest absolute sample value since Reset.
func (m *Meter) Peak() float64 { return m.peak }

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return silenceLUFS
	}

	return -0.691 + 10.0*math.Log10(meanSquare)
}
