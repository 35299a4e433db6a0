package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLenReuse(t *testing.T) {
	t.Parallel()

	buf := make([]float32, 4, 8)

	out := EnsureLen(buf, 6)
	require.Len(t, out, 6)
	assert.Equal(t, cap(buf), cap(out))
	assert.Empty(t, EnsureLen(buf, 0))
}

func TestCopyInto(t *testing.T) {
	t.Parallel()

	dst := make([]float32, 2)

	n := CopyInto(dst, []float32{1, 2, 3})
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{1, 2}, dst)
}

func TestZero(t *testing.T) {
	t.Parallel()

	buf := []float32{1, 2, 3}
	Zero(buf)
	assert.Equal(t, []float32{0, 0, 0}, buf)
}

func TestWiden(t *testing.T) {
	t.Parallel()

	out := Widen(nil, []float32{0.5, -1})
	assert.Equal(t, []float64{0.5, -1}, out)
}
