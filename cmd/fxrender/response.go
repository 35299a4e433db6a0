package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/measure/response"
)

// chainSystem lets a chain be measured like a single effect.
type chainSystem struct {
	*effectchain.Chain
}

func (c chainSystem) Reset() { c.ResetAll() }

type responseOptions struct {
	fftSize int
	points  int
	minFreq float64
	smooth  int
	tone    bool
	level   float64
	summary bool
}

func responseCommand(a *app) *cobra.Command {
	var opts responseOptions

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the frequency response of the configured chain",
		Long: `Print level, phase and group delay of the configured chain at
log-spaced frequencies, measured from its impulse response. With --tone every
frequency is measured with a steady sine instead, which also gives a
meaningful level for distortion.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runResponse(opts)
		},
	}

	cmd.Flags().Float64("samplerate", 0, "Sample rate in Hz")
	cmd.Flags().IntVar(&opts.fftSize, "fftsize", response.DefaultFFTSize, "FFT size, a power of two")
	cmd.Flags().IntVar(&opts.points, "points", 31, "Number of log-spaced frequencies to print")
	cmd.Flags().Float64Var(&opts.minFreq, "minfreq", 20, "Lowest printed frequency in Hz")
	cmd.Flags().IntVar(&opts.smooth, "smooth", 0, "Smooth the level over 1/N octave bands, 0 to disable")
	cmd.Flags().BoolVar(&opts.tone, "tone", false, "Measure every frequency with a steady sine")
	cmd.Flags().Float64Var(&opts.level, "level", 0.5, "Peak amplitude of the --tone test sine")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print peak, -3 dB edges and centroid after the table")

	return cmd
}

func (a *app) runResponse(opts responseOptions) error {
	s := a.settings
	sr := s.Render.SampleRate

	if opts.points < 2 {
		return fmt.Errorf("points must be >= 2: %d", opts.points)
	}

	if opts.smooth < 0 {
		return fmt.Errorf("smooth must be >= 0: %d", opts.smooth)
	}

	maxFreq := sr / 2
	if !(opts.minFreq > 0 && opts.minFreq < maxFreq) {
		return fmt.Errorf("minfreq must be in (0, %g): %g", maxFreq, opts.minFreq)
	}

	chain, err := effectchain.Build(a.registry, effectchain.Context{SampleRate: float32(sr)}, s.Effects)
	if err != nil {
		return err
	}

	sys := chainSystem{chain}
	freqs := logSpaced(opts.minFreq, maxFreq, opts.points)

	if opts.tone {
		return a.printToneResponse(sys, freqs, sr, opts.level)
	}

	res, err := response.Analyze(sys, response.Config{SampleRate: sr, FFTSize: opts.fftSize})
	if err != nil {
		return err
	}

	if opts.smooth > 0 {
		if res, err = res.Smooth(opts.smooth); err != nil {
			return err
		}
	}

	a.logger.Debug("response measured",
		"module", "response",
		"fftsize", res.FFTSize,
		"bin_hz", res.BinHz(),
		"smooth", opts.smooth)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "freq (Hz)\tlevel (dB)\tphase (deg)\tdelay (ms)\t\n")

	for _, f := range freqs {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.1f\t%.3f\t\n",
			f, res.At(f), res.PhaseAt(f)*180/math.Pi, res.DelayAt(f)*1000)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if !opts.summary {
		return nil
	}

	st := res.Summary()
	tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\npeak\t%.2f dB at %.1f Hz\n", st.Peak_dB, st.PeakHz)
	fmt.Fprintf(tw, "-3 dB band\t%.1f - %.1f Hz\n", st.LowerEdge, st.UpperEdge)
	fmt.Fprintf(tw, "centroid\t%.1f Hz\n", st.Centroid)
	fmt.Fprintf(tw, "rolloff\t%.1f Hz\n", st.Rolloff)

	return tw.Flush()
}

func (a *app) printToneResponse(sys response.System, freqs []float64, sr, level float64) error {
	if !(level > 0 && level <= 1) {
		return fmt.Errorf("level must be in (0, 1]: %g", level)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "freq (Hz)\tgain (dB)\t\n")

	for _, f := range freqs {
		gain, err := response.ToneGain(sys, f, response.ToneConfig{SampleRate: sr, Amplitude: level})
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%.1f\t%.2f\t\n", f, gain)
	}

	return tw.Flush()
}

// logSpaced returns n frequencies from lo to hi with equal ratios.
func logSpaced(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	ratio := math.Log(hi / lo)

	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	return out
}
