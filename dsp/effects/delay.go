package effects

import (
	"github.com/cwbudde/algo-sampler/dsp/core"
	"github.com/cwbudde/algo-sampler/dsp/delay"
)

const (
	defaultDelayTimeSeconds = 0.25
	defaultDelayFeedback    = 0.35
	defaultDelayMix         = 0.25
	maxDelayTimeSeconds     = 10.0
	maxDelayFeedback        = 0.99
)

// Delay is a feedback delay with dry/wet mix.
//
// The ring buffer only grows: lengthening the delay time past the buffer
// reallocates it with the retained history in order, while shortening
// keeps the existing allocation.
type Delay struct {
	sampleRate   float32
	delaySeconds float32
	feedback     float32
	mix          float32

	delaySamples int
	line         *delay.Line
}

// NewDelay creates a delay. seconds is clamped to [0, 10], feedback to
// [0, 0.99] and mix to [0, 1].
func NewDelay(seconds, feedback, mix, sampleRate float32) *Delay {
	d := &Delay{
		sampleRate: sanitizeSampleRate(sampleRate),
		feedback:   core.Clamp32(feedback, 0, maxDelayFeedback),
		mix:        core.Clamp32(mix, 0, 1),
	}

	d.delaySeconds = core.Clamp32(seconds, 0, maxDelayTimeSeconds)
	d.delaySamples = d.samplesFor(d.delaySeconds)

	line, err := delay.New(d.delaySamples + 1)
	if err != nil {
		panic(err) // unreachable: delaySamples >= 0
	}

	d.line = line

	return d
}

// NewDefaultDelay returns a 250 ms slap-back delay.
func NewDefaultDelay(sampleRate float32) *Delay {
	return NewDelay(defaultDelayTimeSeconds, defaultDelayFeedback, defaultDelayMix, sampleRate)
}

// Process processes one sample.
func (d *Delay) Process(sample float32) float32 {
	delayed := d.line.Read(d.delaySamples)
	d.line.Write(core.FlushDenormals(sample + delayed*d.feedback))

	return sample*(1-d.mix) + delayed*d.mix
}

// Reset clears delay state.
func (d *Delay) Reset() {
	d.line.Reset()
}

// SetParameter handles "time", "feedback" and "mix".
func (d *Delay) SetParameter(name string, value float32) bool {
	switch name {
	case "time":
		d.SetTime(value)
	case "feedback":
		d.SetFeedback(value)
	case "mix":
		d.SetMix(value)
	default:
		return false
	}

	return true
}

// Name returns "Delay".
func (d *Delay) Name() string { return "Delay" }

// SetTime sets delay time in seconds. This may allocate and belongs between
// render calls, not inside one.
func (d *Delay) SetTime(seconds float32) {
	d.delaySeconds = core.Clamp32(seconds, 0, maxDelayTimeSeconds)
	d.delaySamples = d.samplesFor(d.delaySeconds)

	if d.delaySamples >= d.line.Len() {
		d.line.Grow(d.delaySamples + 1)
	}
}

// SetFeedback sets feedback amount in [0, 0.99].
func (d *Delay) SetFeedback(feedback float32) {
	d.feedback = core.Clamp32(feedback, 0, maxDelayFeedback)
}

// SetMix sets wet amount in [0, 1].
func (d *Delay) SetMix(mix float32) {
	d.mix = core.Clamp32(mix, 0, 1)
}

// Time returns delay time in seconds.
func (d *Delay) Time() float32 { return d.delaySeconds }

// Feedback returns feedback amount in [0, 0.99].
func (d *Delay) Feedback() float32 { return d.feedback }

// Mix returns wet amount in [0, 1].
func (d *Delay) Mix() float32 { return d.mix }

// SampleRate returns sample rate in Hz.
func (d *Delay) SampleRate() float32 { return d.sampleRate }

// DelaySamples returns the delay in whole samples.
func (d *Delay) DelaySamples() int { return d.delaySamples }

// BufferLen returns the ring buffer capacity. It is always greater than
// DelaySamples.
func (d *Delay) BufferLen() int { return d.line.Len() }

func (d *Delay) samplesFor(seconds float32) int {
	return int(seconds * d.sampleRate)
}
