package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestPhase(t *testing.T) {
	out := Phase([]complex128{1, 1i, -1i, -1})
	want := []float64{0, math.Pi / 2, -math.Pi / 2, math.Pi}

	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("phase[%d]=%f want=%f", i, out[i], want[i])
		}
	}
}

func TestUnwrapPhase(t *testing.T) {
	in := []float64{2.8, -2.7, -2.6}

	out := UnwrapPhase(in)
	if len(out) != len(in) {
		t.Fatalf("unwrap length mismatch")
	}

	if math.Abs((out[1]-out[0])-(2*math.Pi-5.5)) > 1e-12 {
		t.Fatalf("unexpected unwrap delta: %f", out[1]-out[0])
	}

	if UnwrapPhase(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestUnwrapPhase_Descending(t *testing.T) {
	// A pure delay wraps downwards.
	const delay = 3.0

	wrapped := make([]float64, 40)
	for k := range wrapped {
		w := 2 * math.Pi * float64(k) / 64
		wrapped[k] = math.Remainder(-w*delay, 2*math.Pi)
	}

	out := UnwrapPhase(wrapped)
	for k, v := range out {
		want := -2 * math.Pi * float64(k) / 64 * delay
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("out[%d]=%f want=%f", k, v, want)
		}
	}
}

func TestGroupDelayConstantDelay(t *testing.T) {
	fftSize := 1024
	delaySamples := 12.5

	phase := make([]float64, 64)
	for k := range phase {
		w := 2 * math.Pi * float64(k) / float64(fftSize)
		phase[k] = -w * delaySamples
	}

	gd, err := GroupDelay(phase, fftSize)
	if err != nil {
		t.Fatalf("GroupDelay error: %v", err)
	}

	for i, v := range gd {
		if math.Abs(v-delaySamples) > 1e-9 {
			t.Fatalf("gd[%d]=%f want=%f", i, v, delaySamples)
		}
	}
}

func TestGroupDelayErrors(t *testing.T) {
	if _, err := GroupDelay([]float64{1}, 8); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short phase: got %v", err)
	}

	if _, err := GroupDelay([]float64{1, 2}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fft size: got %v", err)
	}
}

func TestInterpolateLinear(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 20}
	q := []float64{-1, 0.5, 1, 2, 3}

	out, err := InterpolateLinear(x, y, q)
	if err != nil {
		t.Fatalf("InterpolateLinear error: %v", err)
	}

	want := []float64{0, 5, 10, 20, 20}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d]=%f want=%f", i, out[i], want[i])
		}
	}
}

func TestInterpolateLinearErrors(t *testing.T) {
	if _, err := InterpolateLinear(nil, nil, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected error for empty x/y")
	}

	if _, err := InterpolateLinear([]float64{0, 1}, []float64{1}, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected error for mismatch")
	}

	if _, err := InterpolateLinear([]float64{0, 0}, []float64{1, 2}, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected error for non-monotonic x")
	}
}

func TestSmoothFractionalOctave(t *testing.T) {
	freq := []float64{100, 125, 160, 200, 250, 315}
	vals := []float64{1, 1, 9, 1, 1, 1}

	out, err := SmoothFractionalOctave(freq, vals, 1)
	if err != nil {
		t.Fatalf("SmoothFractionalOctave error: %v", err)
	}

	if len(out) != len(vals) {
		t.Fatalf("length mismatch")
	}

	if !(out[2] < vals[2]) {
		t.Fatalf("expected peak smoothing at center: out=%v", out)
	}

	if !(out[1] > vals[1]) {
		t.Fatalf("expected neighboring lift from smoothing: out=%v", out)
	}

	if out[5] != 1 {
		t.Fatalf("band without the peak changed: %v", out[5])
	}
}

func TestSmoothFractionalOctaveErrors(t *testing.T) {
	cases := []struct {
		name     string
		freq     []float64
		vals     []float64
		fraction int
	}{
		{"empty", nil, nil, 3},
		{"mismatch", []float64{1, 2}, []float64{1}, 3},
		{"zero fraction", []float64{1, 2}, []float64{1, 1}, 0},
		{"non-positive freq", []float64{0, 2}, []float64{1, 1}, 3},
		{"non-increasing", []float64{2, 2}, []float64{1, 1}, 3},
	}

	for _, tc := range cases {
		if _, err := SmoothFractionalOctave(tc.freq, tc.vals, tc.fraction); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
}
