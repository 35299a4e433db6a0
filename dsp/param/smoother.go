// Package param provides per-tick control value smoothing.
package param

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/core"
	"github.com/cwbudde/algo-sampler/dsp/interp"
)

// Smoother glides a control value toward its target with a one-pole
// exponential step:
//
//	current += factor * (target - current)
//
// A factor of 0 freezes the value; a factor of 1 jumps to the target on
// the next Process call. Once a step is too small to change a float32 the
// value snaps to the target, so any positive threshold is eventually met.
type Smoother struct {
	current float32
	target  float32
	factor  float32
}

// NewSmoother returns a smoother settled at initial. factor is clamped to
// [0, 1].
func NewSmoother(initial, factor float32) *Smoother {
	return &Smoother{
		current: initial,
		target:  initial,
		factor:  core.Clamp32(factor, 0, 1),
	}
}

// SetTarget sets the value to glide toward.
func (s *Smoother) SetTarget(target float32) {
	s.target = target
}

// SetSmoothingFactor sets the per-tick step fraction, clamped to [0, 1].
func (s *Smoother) SetSmoothingFactor(factor float32) {
	s.factor = core.Clamp32(factor, 0, 1)
}

// Process advances one tick and returns the new current value.
func (s *Smoother) Process() float32 {
	next := interp.Lerp(s.current, s.target, s.factor)
	if next == s.current && s.factor > 0 {
		next = s.target
	}

	s.current = next

	return s.current
}

// Reset jumps both current and target to value.
func (s *Smoother) Reset(value float32) {
	s.current = value
	s.target = value
}

// IsCloseToTarget reports whether |current - target| < threshold.
func (s *Smoother) IsCloseToTarget(threshold float32) bool {
	return math.Abs(float64(s.current-s.target)) < float64(threshold)
}

// Current returns the value most recently produced.
func (s *Smoother) Current() float32 { return s.current }

// Target returns the value being approached.
func (s *Smoother) Target() float32 { return s.target }

// Factor returns the smoothing factor.
func (s *Smoother) Factor() float32 { return s.factor }

// FactorForTime returns the factor that covers 1-1/e of a step in
// seconds at the given sample rate. Non-positive times return 1.
func FactorForTime(seconds, sampleRate float32) float32 {
	if !(seconds > 0) || !(sampleRate > 0) {
		return 1
	}

	return float32(1 - math.Exp(-1/(float64(seconds)*float64(sampleRate))))
}
