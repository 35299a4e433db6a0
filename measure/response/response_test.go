package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sampler/dsp/effects"
	"github.com/cwbudde/algo-sampler/dsp/spectrum"
)

type passThrough struct{}

func (passThrough) Process(x float32) float32         { return x }
func (passThrough) Reset()                            {}
func (passThrough) SetParameter(string, float32) bool { return false }
func (passThrough) Name() string                      { return "PassThrough" }

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		fx   effects.Effect
		cfg  Config
		want error
	}{
		{"nil system", nil, Config{SampleRate: 48000}, ErrNilSystem},
		{"zero rate", passThrough{}, Config{}, ErrInvalidSampleRate},
		{"nan rate", passThrough{}, Config{SampleRate: math.NaN()}, ErrInvalidSampleRate},
		{"odd size", passThrough{}, Config{SampleRate: 48000, FFTSize: 1000}, ErrInvalidFFTSize},
		{"tiny size", passThrough{}, Config{SampleRate: 48000, FFTSize: 8}, ErrInvalidFFTSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Analyze(tc.fx, tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAnalyzePassThroughIsFlat(t *testing.T) {
	res, err := Analyze(passThrough{}, Config{SampleRate: 48000, FFTSize: 256})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.FFTSize != 256 || len(res.MagnitudeDB) != 129 {
		t.Fatalf("unexpected sizes: fft=%d bins=%d", res.FFTSize, len(res.MagnitudeDB))
	}

	for k, v := range res.MagnitudeDB {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("bin %d: got %.3g dB, want 0", k, v)
		}
	}
}

func TestAnalyzeDefaultsFFTSize(t *testing.T) {
	res, err := Analyze(passThrough{}, Config{SampleRate: 44100})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.FFTSize != DefaultFFTSize {
		t.Fatalf("fft size: got %d want %d", res.FFTSize, DefaultFFTSize)
	}
}

func TestAnalyzeLowPass(t *testing.T) {
	f := effects.NewFilter(effects.LowPass, 1000, 0.707, 48000)

	res, err := Analyze(f, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if got := res.At(100); got < -1 || got > 1 {
		t.Fatalf("passband at 100 Hz: got %.2f dB", got)
	}

	if got := res.At(1000); math.Abs(got+3) > 0.5 {
		t.Fatalf("cutoff at 1 kHz: got %.2f dB, want about -3", got)
	}

	if got := res.At(10000); got > -30 {
		t.Fatalf("stopband at 10 kHz: got %.2f dB", got)
	}
}

func TestAnalyzeBandPassPeaksAtCenter(t *testing.T) {
	f := effects.NewFilter(effects.BandPass, 2000, 4, 48000)

	res, err := Analyze(f, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	freq, _ := res.Peak()
	if math.Abs(freq-2000) > 2*res.BinHz() {
		t.Fatalf("peak at %.1f Hz, want near 2000", freq)
	}
}

func TestAnalyzeCapturesDelayAndResets(t *testing.T) {
	d := effects.NewDelay(0.001, 0, 1, 48000)

	res, err := Analyze(d, Config{SampleRate: 48000, FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for i, v := range res.Impulse {
		want := 0.0
		if i == d.DelaySamples() {
			want = 1
		}

		if v != want {
			t.Fatalf("impulse[%d]: got %g want %g", i, v, want)
		}
	}

	for k, v := range res.MagnitudeDB {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("pure delay bin %d: got %.3g dB, want 0", k, v)
		}
	}

	if out := d.Process(1); out != 0 {
		t.Fatalf("delay not reset after analysis: got %g", out)
	}
}

func TestAnalyzeAmplitudeIsNormalized(t *testing.T) {
	f := effects.NewFilter(effects.LowPass, 2000, 0.707, 48000)

	unit, err := Analyze(f, Config{SampleRate: 48000, FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	half, err := Analyze(f, Config{SampleRate: 48000, FFTSize: 1024, Amplitude: 0.5})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for k := range unit.Magnitude {
		if math.Abs(unit.Magnitude[k]-half.Magnitude[k]) > 1e-5 {
			t.Fatalf("bin %d: %g vs %g", k, unit.Magnitude[k], half.Magnitude[k])
		}
	}
}

func TestResultAtInterpolatesAndClamps(t *testing.T) {
	r := Result{
		SampleRate:  8,
		FFTSize:     8,
		MagnitudeDB: []float64{0, -10, -20, -30, -40},
	}

	cases := []struct {
		freq, want float64
	}{
		{-5, 0},
		{0, 0},
		{1, -10},
		{1.5, -15},
		{3.25, -32.5},
		{4, -40},
		{100, -40},
	}

	for _, tc := range cases {
		if got := r.At(tc.freq); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("At(%g): got %g want %g", tc.freq, got, tc.want)
		}
	}

	if got := (Result{}).At(10); got != FloorDB {
		t.Fatalf("empty result: got %g want %g", got, FloorDB)
	}
}

func TestAnalyzeGroupDelayOfPureDelay(t *testing.T) {
	d := effects.NewDelay(0.001, 0, 1, 48000)

	res, err := Analyze(d, Config{SampleRate: 48000, FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := float64(d.DelaySamples()) / 48000
	for _, f := range []float64{100, 1000, 10000} {
		if got := res.DelayAt(f); math.Abs(got-want) > 1e-9 {
			t.Fatalf("DelayAt(%g): got %g want %g", f, got, want)
		}
	}

	wantPhase := -2 * math.Pi * 1500 * want
	if got := res.PhaseAt(1500); math.Abs(got-wantPhase) > 1e-6 {
		t.Fatalf("PhaseAt(1500): got %g want %g", got, wantPhase)
	}
}

func TestAnalyzePassThroughHasNoDelay(t *testing.T) {
	res, err := Analyze(passThrough{}, Config{SampleRate: 48000, FFTSize: 256})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if got := res.DelayAt(5000); got != 0 {
		t.Fatalf("DelayAt: got %g want 0", got)
	}

	if got := (Result{}).PhaseAt(100); got != 0 {
		t.Fatalf("empty PhaseAt: got %g", got)
	}
}

func TestResultSummaryFindsCutoff(t *testing.T) {
	f := effects.NewFilter(effects.LowPass, 1000, 0.707, 48000)

	res, err := Analyze(f, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	s := res.Summary()
	if s.LowerEdge != 0 {
		t.Fatalf("lower edge: got %g want 0", s.LowerEdge)
	}

	if math.Abs(s.UpperEdge-1000) > 2*res.BinHz() {
		t.Fatalf("upper edge: got %.1f want about 1000", s.UpperEdge)
	}
}

func TestResultSmooth(t *testing.T) {
	flat, err := Analyze(passThrough{}, Config{SampleRate: 48000, FFTSize: 512})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	sm, err := flat.Smooth(3)
	if err != nil {
		t.Fatalf("Smooth: %v", err)
	}

	for k, v := range sm.MagnitudeDB {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("smoothed flat response bin %d: %g dB", k, v)
		}
	}

	bp := effects.NewFilter(effects.BandPass, 2000, 20, 48000)

	res, err := Analyze(bp, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	sm, err = res.Smooth(1)
	if err != nil {
		t.Fatalf("Smooth: %v", err)
	}

	_, peak := res.Peak()
	_, smoothedPeak := sm.Peak()

	if !(smoothedPeak < peak-3) {
		t.Fatalf("octave smoothing should flatten a narrow peak: %.2f vs %.2f dB", smoothedPeak, peak)
	}

	if len(res.Magnitude) > 0 && res.Magnitude[0] != sm.Magnitude[0] {
		t.Fatal("DC bin changed")
	}

	if _, err := res.Smooth(0); err == nil {
		t.Fatal("expected error for zero fraction")
	}
}

func TestToneGain(t *testing.T) {
	cfg := ToneConfig{SampleRate: 48000}

	got, err := ToneGain(passThrough{}, 1000, cfg)
	if err != nil {
		t.Fatalf("ToneGain: %v", err)
	}

	if math.Abs(got) > 1e-6 {
		t.Fatalf("pass-through gain: got %g dB", got)
	}

	lp := effects.NewFilter(effects.LowPass, 1000, 0.707, 48000)

	res, err := Analyze(lp, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for _, f := range []float64{500, 1000, 4000} {
		got, err := ToneGain(lp, f, cfg)
		if err != nil {
			t.Fatalf("ToneGain(%g): %v", f, err)
		}

		if want := res.At(f); math.Abs(got-want) > 0.1 {
			t.Fatalf("ToneGain(%g): got %.3f dB, impulse method %.3f dB", f, got, want)
		}
	}
}

func TestToneGainRejectsInvalidInput(t *testing.T) {
	if _, err := ToneGain(nil, 1000, ToneConfig{SampleRate: 48000}); !errors.Is(err, ErrNilSystem) {
		t.Fatalf("nil system: got %v", err)
	}

	if _, err := ToneGain(passThrough{}, 1000, ToneConfig{}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate: got %v", err)
	}

	if _, err := ToneGain(passThrough{}, 30000, ToneConfig{SampleRate: 48000}); !errors.Is(err, spectrum.ErrInvalidFrequency) {
		t.Fatalf("above nyquist: got %v", err)
	}
}
