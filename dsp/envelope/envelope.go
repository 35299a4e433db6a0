// Package envelope implements a per-voice ADSR amplitude envelope with an
// additional hold stage between decay and sustain.
//
// The envelope produces a gain in [0, 1] once per audio tick. Applying the
// gain to the signal is left to the caller.
package envelope

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/core"
)

const (
	defaultAttack  = 0.01
	defaultDecay   = 0.1
	defaultHold    = 0.0
	defaultSustain = 0.7
	defaultRelease = 0.3

	minStageTime = 0.001

	// Exponential stages reach exp(-5) of their span when the stage ends.
	curveSteepness = 5.0
)

// Stage identifies the current segment of the envelope.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Hold
	Sustain
	Release
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Hold:
		return "hold"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Envelope is an attack/decay/hold/sustain/release generator.
//
// Trigger restarts the attack from the current level rather than from zero,
// so retriggering a sounding voice does not click.
type Envelope struct {
	attack  float32
	decay   float32
	hold    float32
	sustain float32
	release float32

	stage    Stage
	level    float32
	elapsed  int
	startLvl float32

	sampleRate float32
}

// New returns an idle envelope with 10 ms attack, 100 ms decay, no hold,
// 0.7 sustain and 300 ms release.
func New(sampleRate float32) *Envelope {
	e := &Envelope{
		attack:  defaultAttack,
		decay:   defaultDecay,
		hold:    defaultHold,
		sustain: defaultSustain,
		release: defaultRelease,
	}
	e.SetSampleRate(sampleRate)

	return e
}

// SetSampleRate changes the tick duration. Invalid rates fall back to
// 44.1 kHz. Stage times are converted to whole ticks, rounded to nearest.
func (e *Envelope) SetSampleRate(sampleRate float32) {
	sr := float64(sampleRate)
	if sr <= 0 || math.IsNaN(sr) || math.IsInf(sr, 0) {
		sampleRate = float32(core.DefaultSampleRate)
	}

	e.sampleRate = sampleRate
}

// SetParameters sets stage times in seconds and the sustain level.
// Attack, decay and release are floored at 1 ms, hold at 0, and sustain is
// clamped to [0, 1].
func (e *Envelope) SetParameters(attack, decay, hold, sustain, release float32) {
	e.attack = floor(attack, minStageTime)
	e.decay = floor(decay, minStageTime)
	e.hold = floor(hold, 0)
	e.sustain = core.Clamp32(sustain, 0, 1)
	e.release = floor(release, minStageTime)
}

// Trigger starts the attack stage from the current level.
func (e *Envelope) Trigger() {
	e.enter(Attack)
}

// Release starts the release stage. It does nothing while idle.
func (e *Envelope) Release() {
	if e.stage != Idle {
		e.enter(Release)
	}
}

// Reset forces the envelope to idle at level 0.
func (e *Envelope) Reset() {
	e.stage = Idle
	e.level = 0
	e.elapsed = 0
	e.startLvl = 0
}

// Process advances the envelope by one tick and returns the new level.
func (e *Envelope) Process() float32 {
	e.elapsed++

	switch e.stage {
	case Idle:
		e.level = 0

	case Attack:
		if n := e.ticks(e.attack); e.elapsed >= n {
			e.level = 1
			e.enter(Decay)
		} else {
			e.level = e.startLvl + (1-e.startLvl)*float32(float64(e.elapsed)/float64(n))
		}

	case Decay:
		if n := e.ticks(e.decay); e.elapsed >= n {
			e.level = e.sustain
			if e.hold > 0 {
				e.enter(Hold)
			} else {
				e.enter(Sustain)
			}
		} else {
			e.level = e.sustain + (1-e.sustain)*decayCurve(e.elapsed, n)
		}

	case Hold:
		e.level = e.sustain
		if e.elapsed >= e.ticks(e.hold) {
			e.enter(Sustain)
		}

	case Sustain:
		e.level = e.sustain

	case Release:
		if n := e.ticks(e.release); e.elapsed >= n {
			e.level = 0
			e.enter(Idle)
		} else {
			e.level = e.startLvl * decayCurve(e.elapsed, n)
		}
	}

	return e.level
}

// IsActive reports whether the envelope is in any stage other than Idle.
func (e *Envelope) IsActive() bool {
	return e.stage != Idle
}

// Stage returns the current stage.
func (e *Envelope) Stage() Stage { return e.stage }

// Level returns the most recent output without advancing.
func (e *Envelope) Level() float32 { return e.level }

// Parameters returns attack, decay, hold, sustain and release as stored.
func (e *Envelope) Parameters() (attack, decay, hold, sustain, release float32) {
	return e.attack, e.decay, e.hold, e.sustain, e.release
}

func (e *Envelope) enter(stage Stage) {
	e.stage = stage
	e.elapsed = 0
	e.startLvl = e.level
}

// ticks returns the length of a stage in whole ticks.
// Lengths beyond MaxInt32 ticks are capped.
func (e *Envelope) ticks(seconds float32) int {
	n := math.Round(float64(seconds) * float64(e.sampleRate))
	if n >= math.MaxInt32 {
		return math.MaxInt32
	}

	return int(n)
}

func decayCurve(elapsed, length int) float32 {
	return float32(math.Exp(-curveSteepness * float64(elapsed) / float64(length)))
}

// floor returns max(v, lo) with NaN mapped to lo.
func floor(v, lo float32) float32 {
	if math.IsNaN(float64(v)) || v < lo {
		return lo
	}

	return v
}
