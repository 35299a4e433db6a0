package render

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, length, noteOff int) *Session {
	t.Helper()

	v := newTestVoice(t, effectchain.New(), 0.5, nil)

	s, err := NewSession(v, testutil.DC(1, length), noteOff, nil)
	require.NoError(t, err)

	return s
}

func TestNewSessionRequiresVoice(t *testing.T) {
	t.Parallel()

	_, err := NewSession(nil, nil, -1, nil)
	require.ErrorIs(t, err, errNilVoice)
}

func TestSessionReleasesAtNoteOffTick(t *testing.T) {
	t.Parallel()

	want := []float32{1, 0.5, 0.5, 0, 0, 0}

	for _, block := range []int{1, 2, 4, 6, 16} {
		s := newTestSession(t, 6, 3)

		out := make([]float32, 0, 6)
		buf := make([]float32, block)

		for {
			n := s.Next(buf)
			if n == 0 {
				break
			}

			out = append(out, buf[:n]...)
		}

		assert.Equal(t, want, out, "block size %d", block)
		assert.Equal(t, 0, s.Remaining())
		assert.False(t, s.Voice().Active())
	}
}

func TestSessionHeldNote(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 4, -1)

	out, err := s.Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 0.5, 0.5, 0.5}, out)
	assert.True(t, s.Voice().Active())
}

func TestSessionNoteOffBeyondEnd(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 3, 10)

	_, err := s.Run(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, s.Voice().Active())
}

func TestSessionRunMatchesNext(t *testing.T) {
	t.Parallel()

	a := newTestSession(t, 6, 3)
	out, err := a.Run(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 0.5, 0.5, 0, 0, 0}, out)
	assert.Equal(t, 6, a.Position())
}

func TestSessionStats(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, 3)
	_, err := s.Run(context.Background(), 2)
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 6, st.Length)
	assert.InDelta(t, 1.0, st.Peak, 0)
	assert.Equal(t, 0, st.MaxPos)
}

func TestSessionRunRejectsBadBlockSize(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 4, -1)

	_, err := s.Run(context.Background(), 0)
	require.Error(t, err)
}

func TestSessionRunHonorsContext(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 64, -1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := s.Run(ctx, 8)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
	assert.Equal(t, 0, s.Position())
}

func TestSessionLoudness(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 100, -1)
	assert.Nil(t, s.Loudness())

	v := newTestVoice(t, effectchain.New(), 1, nil)
	s, err := NewSession(v, testutil.DeterministicSine(1000, 48000, 1, 48000), -1, nil)
	require.NoError(t, err)

	s.MeasureLoudness(48000)

	_, err = s.Run(context.Background(), 512)
	require.NoError(t, err)

	m := s.Loudness()
	require.NotNil(t, m)
	assert.InDelta(t, 1.0, m.Peak(), 0.01)
	assert.InDelta(t, -3.03, m.Integrated(), 0.2)
}
