package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAbsDiff(t *testing.T) {
	t.Parallel()

	d, err := MaxAbsDiff([]float32{1, 2, 3}, []float32{1, 2.5, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-12)

	d, err = MaxAbsDiff([]float32{1, 2}, []float32{1, 2})
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := MaxAbsDiff([]float32{1}, []float32{1, 2})
	require.Error(t, err)
}

func TestRequireHelpersPass(t *testing.T) {
	t.Parallel()

	RequireFinite(t, []float32{0, 1, -1})
	RequireSliceNearlyEqual(t, []float32{1, 2}, []float32{1.0001, 2}, 1e-3)
}
