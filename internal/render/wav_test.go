package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sampler/dsp/dither"
)

func TestWAVRoundTrip(t *testing.T) {
	t.Parallel()

	in := []float32{0, 0.5, -0.5, 0.25, -1, 0.999, -0.123}

	for _, bits := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out", "tone.wav")
		require.NoError(t, WriteWAV(path, in, 48000, bits))

		got, rate, err := ReadWAV(path)
		require.NoError(t, err, "bits %d", bits)
		assert.Equal(t, 48000, rate)
		require.Len(t, got, len(in))

		tol := 1.0 / float64(int64(1)<<(bits-1))
		for i := range in {
			assert.InDelta(t, in[i], got[i], tol+1e-7, "bits %d sample %d", bits, i)
		}
	}
}

func TestWAVClipsOutOfRange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, WriteWAV(path, []float32{2, -2}, 44100, 16))

	got, _, err := ReadWAV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.InDelta(t, 32767.0/32768.0, got[0], 1e-7)
	assert.InDelta(t, -1.0, got[1], 0)
}

func TestWAVDitherIsSeeded(t *testing.T) {
	t.Parallel()

	in := make([]float32, 512)
	for i := range in {
		in[i] = 0.3 * float32(i%64) / 64
	}

	dir := t.TempDir()
	write := func(name string, opts ...WAVOption) []byte {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteWAV(path, in, 48000, 16, opts...))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		return data
	}

	a := write("a.wav", WithDither(dither.DitherTriangular, 3))
	b := write("b.wav", WithDither(dither.DitherTriangular, 3))
	c := write("c.wav", WithDither(dither.DitherTriangular, 4))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	got, _, err := ReadWAV(filepath.Join(dir, "a.wav"))
	require.NoError(t, err)
	require.Len(t, got, len(in))

	for i := range in {
		assert.InDelta(t, in[i], got[i], 1.5/32768, "sample %d", i)
	}
}

func TestWAVNoiseShapingKeepsLevel(t *testing.T) {
	t.Parallel()

	in := make([]float32, 1024)
	for i := range in {
		in[i] = 0.25
	}

	path := filepath.Join(t.TempDir(), "shaped.wav")
	require.NoError(t, WriteWAV(path, in, 48000, 16,
		WithDither(dither.DitherRectangular, 9), WithNoiseShaping(true)))

	got, _, err := ReadWAV(path)
	require.NoError(t, err)

	var sum float64
	for _, v := range got {
		sum += float64(v)
	}

	assert.InDelta(t, 0.25, sum/float64(len(got)), 1.0/32768)
}

func TestWAVRejectsUnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	err := WriteWAV(filepath.Join(t.TempDir(), "x.wav"), []float32{0}, 44100, 8)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)
}

func TestReadWAVInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a riff file"), 0o600))

	_, _, err := ReadWAV(path)
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestReadWAVMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := ReadWAV(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}
