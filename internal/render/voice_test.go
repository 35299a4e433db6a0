package render

import (
	"testing"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/dsp/envelope"
	"github.com/cwbudde/algo-sampler/dsp/param"
	"github.com/cwbudde/algo-sampler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One tick is 1 ms, so the 1 ms stage floors each last a single tick.
const tickRate = 1000

type scaleEffect struct {
	gain   float32
	resets int
}

func (s *scaleEffect) Process(x float32) float32 { return x * s.gain }
func (s *scaleEffect) Reset()                    { s.resets++ }
func (s *scaleEffect) Name() string              { return "Scale" }

func (s *scaleEffect) SetParameter(name string, value float32) bool {
	if name != "gain" {
		return false
	}

	s.gain = value

	return true
}

// stepEnvelope reaches sustain on the second tick and silence one tick
// after release.
func stepEnvelope(sustain float32) *envelope.Envelope {
	env := envelope.New(tickRate)
	env.SetParameters(0, 0, 0, sustain, 0)

	return env
}

func newTestVoice(t *testing.T, chain *effectchain.Chain, sustain float32, gain *param.Smoother) *Voice {
	t.Helper()

	v, err := NewVoice(chain, stepEnvelope(sustain), gain, nil)
	require.NoError(t, err)

	return v
}

func TestNewVoiceRequiresParts(t *testing.T) {
	t.Parallel()

	_, err := NewVoice(nil, stepEnvelope(1), nil, nil)
	require.ErrorIs(t, err, errNilChain)

	_, err = NewVoice(effectchain.New(), nil, nil, nil)
	require.ErrorIs(t, err, errNilEnvelope)
}

func TestVoiceAppliesEnvelopePerTick(t *testing.T) {
	t.Parallel()

	v := newTestVoice(t, effectchain.New(), 0.5, nil)
	assert.False(t, v.Active())

	v.NoteOn()
	assert.True(t, v.Active())

	out := make([]float32, 5)
	n := v.Render(out, testutil.DC(1, 5))
	require.Equal(t, 5, n)
	assert.Equal(t, []float32{1, 0.5, 0.5, 0.5, 0.5}, out)

	v.NoteOff()

	out = make([]float32, 2)
	v.Render(out, testutil.DC(1, 2))
	assert.Equal(t, []float32{0, 0}, out)
	assert.False(t, v.Active())
}

func TestVoiceRunsChainBeforeEnvelope(t *testing.T) {
	t.Parallel()

	fx := &scaleEffect{gain: 0.25}
	v := newTestVoice(t, effectchain.New(fx), 1, nil)
	v.NoteOn()

	out := make([]float32, 3)
	v.Render(out, testutil.DC(2, 3))
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, out)
}

func TestVoiceRenderLength(t *testing.T) {
	t.Parallel()

	v := newTestVoice(t, effectchain.New(), 1, nil)
	v.NoteOn()

	assert.Equal(t, 2, v.Render(make([]float32, 2), make([]float32, 8)))
	assert.Equal(t, 3, v.Render(make([]float32, 8), make([]float32, 3)))
	assert.Equal(t, 0, v.Render(nil, make([]float32, 3)))
}

func TestVoiceRenderInPlace(t *testing.T) {
	t.Parallel()

	v := newTestVoice(t, effectchain.New(&scaleEffect{gain: 2}), 1, nil)
	v.NoteOn()

	buf := testutil.DC(0.25, 4)
	v.Render(buf, buf)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5}, buf)
}

func TestVoiceSmoothsMasterGain(t *testing.T) {
	t.Parallel()

	gain := param.NewSmoother(0, 0.5)
	gain.SetTarget(1)

	v := newTestVoice(t, effectchain.New(), 1, gain)
	v.NoteOn()

	out := make([]float32, 4)
	v.Render(out, testutil.DC(1, 4))
	assert.Equal(t, []float32{0.5, 0.75, 0.875, 0.9375}, out)
}

func TestVoiceSettledGain(t *testing.T) {
	t.Parallel()

	v := newTestVoice(t, effectchain.New(), 1, param.NewSmoother(0.5, 1))
	v.NoteOn()

	out := make([]float32, 3)
	v.Render(out, testutil.DC(1, 3))
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, out)

	v.SetGain(0.25)
	v.Render(out, testutil.DC(1, 3))
	assert.Equal(t, []float32{0.25, 0.25, 0.25}, out)
}

func TestVoiceReset(t *testing.T) {
	t.Parallel()

	fx := &scaleEffect{gain: 1}
	gain := param.NewSmoother(0, 0.5)
	gain.SetTarget(1)

	v := newTestVoice(t, effectchain.New(fx), 1, gain)
	v.NoteOn()
	v.Render(make([]float32, 2), testutil.DC(1, 2))

	v.Reset()

	assert.Equal(t, 1, fx.resets)
	assert.False(t, v.Active())
	assert.Equal(t, envelope.Idle, v.Envelope().Stage())
	assert.Equal(t, float32(1), gain.Current())
}
