package effects

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/core"
)

// Effect is a single-sample audio processor that can be placed in a chain.
//
// Process must not allocate and must be called once per audio tick in
// temporal order. SetParameter reports whether name was recognized; values
// outside a parameter's range are clamped, never rejected.
type Effect interface {
	Process(sample float32) float32
	Reset()
	SetParameter(name string, value float32) bool
	Name() string
}

var (
	_ Effect = (*Filter)(nil)
	_ Effect = (*Delay)(nil)
	_ Effect = (*Distortion)(nil)
)

// maxSampleRate bounds the delay allocation at 10 s of audio.
const maxSampleRate = 768000

// sanitizeSampleRate replaces non-positive or non-finite rates with the
// package default and caps the rest at maxSampleRate.
func sanitizeSampleRate(sampleRate float32) float32 {
	sr := float64(sampleRate)
	if sr <= 0 || math.IsNaN(sr) || math.IsInf(sr, 0) {
		return float32(core.DefaultSampleRate)
	}

	return min(sampleRate, maxSampleRate)
}
