package render

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamMatchesOfflineRender(t *testing.T) {
	t.Parallel()

	offline, err := newTestSession(t, 300, 120).Run(context.Background(), 64)
	require.NoError(t, err)

	stream := NewStream(newTestSession(t, 300, 120))

	raw, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Len(t, raw, 300*BytesPerSample)

	assert.Equal(t, offline, DecodeFloat32LE(raw))
	assert.Equal(t, 300, stream.Position())
}

func TestStreamShortBufferAndEOF(t *testing.T) {
	t.Parallel()

	stream := NewStream(newTestSession(t, 2, -1))

	n, err := stream.Read(make([]byte, 3))
	assert.Equal(t, 0, n)
	require.ErrorIs(t, err, io.ErrShortBuffer)

	p := make([]byte, 64)

	n, err = stream.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 2*BytesPerSample, n)
	assert.Equal(t, []float32{1, 0.5}, DecodeFloat32LE(p[:n]))

	n, err = stream.Read(p)
	assert.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)
}

func TestStreamSetGain(t *testing.T) {
	t.Parallel()

	stream := NewStream(newTestSession(t, 4, -1))
	stream.SetGain(0.5)

	raw, err := io.ReadAll(stream)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, 0.25, 0.25, 0.25}, DecodeFloat32LE(raw))
}

func TestDecodeFloat32LEIgnoresPartialFrame(t *testing.T) {
	t.Parallel()

	assert.Len(t, DecodeFloat32LE(make([]byte, 9)), 2)
}
