package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSmoother(t *testing.T) {
	t.Parallel()

	s := NewSmoother(0.3, 2)
	assert.InDelta(t, 0.3, s.Current(), 1e-7)
	assert.InDelta(t, 0.3, s.Target(), 1e-7)
	assert.InDelta(t, 1, s.Factor(), 0)
	assert.True(t, s.IsCloseToTarget(1e-9))

	assert.Zero(t, NewSmoother(0, -1).Factor())
	assert.Zero(t, NewSmoother(0, float32(math.NaN())).Factor())
}

func TestSmoother_ConvergesMonotonically(t *testing.T) {
	t.Parallel()

	for _, factor := range []float32{0.001, 0.05, 0.5, 0.999} {
		s := NewSmoother(0, factor)
		s.SetTarget(1)

		prev := math.Abs(float64(s.Current() - s.Target()))

		for i := range 100 {
			s.Process()

			dist := math.Abs(float64(s.Current() - s.Target()))
			if prev > 0 {
				require.Less(t, dist, prev, "factor %v step %d", factor, i)
			}

			prev = dist
		}
	}
}

func TestSmoother_EventuallyCloseForAnyThreshold(t *testing.T) {
	t.Parallel()

	for _, threshold := range []float32{0.1, 1e-4, 1e-9, math.SmallestNonzeroFloat32} {
		s := NewSmoother(-5, 0.2)
		s.SetTarget(3)

		steps := 0
		for !s.IsCloseToTarget(threshold) {
			s.Process()

			steps++
			require.Less(t, steps, 10000, "threshold %v never reached", threshold)
		}
	}
}

func TestSmoother_FactorExtremes(t *testing.T) {
	t.Parallel()

	frozen := NewSmoother(0.25, 0)
	frozen.SetTarget(1)

	for range 50 {
		assert.InDelta(t, 0.25, frozen.Process(), 0)
	}

	assert.False(t, frozen.IsCloseToTarget(0.5))

	jump := NewSmoother(0.25, 1)
	jump.SetTarget(-0.75)
	assert.InDelta(t, -0.75, jump.Process(), 0)
	assert.True(t, jump.IsCloseToTarget(1e-9))
}

func TestSmoother_StepSize(t *testing.T) {
	t.Parallel()

	s := NewSmoother(0, 0.5)
	s.SetTarget(1)

	assert.InDelta(t, 0.5, s.Process(), 0)
	assert.InDelta(t, 0.75, s.Process(), 0)

	s.SetSmoothingFactor(0.25)
	assert.InDelta(t, 0.8125, s.Process(), 0)

	s.SetSmoothingFactor(7)
	assert.InDelta(t, 1, s.Factor(), 0)
}

func TestSmoother_Reset(t *testing.T) {
	t.Parallel()

	s := NewSmoother(0, 0.1)
	s.SetTarget(10)
	s.Process()

	s.Reset(2)
	assert.InDelta(t, 2, s.Current(), 0)
	assert.InDelta(t, 2, s.Target(), 0)
	assert.InDelta(t, 2, s.Process(), 0)
}

func TestFactorForTime(t *testing.T) {
	t.Parallel()

	f := FactorForTime(0.01, 1000)
	assert.InDelta(t, 1-math.Exp(-0.1), f, 1e-7)

	s := NewSmoother(0, f)
	s.SetTarget(1)

	for range 10 {
		s.Process()
	}

	assert.InDelta(t, 1-math.Exp(-1), s.Current(), 1e-5)

	assert.InDelta(t, 1, FactorForTime(0, 48000), 0)
	assert.InDelta(t, 1, FactorForTime(0.1, 0), 0)
	assert.InDelta(t, 1, FactorForTime(float32(math.NaN()), 48000), 0)
}
