package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/dsp/window"
	"github.com/cwbudde/algo-sampler/measure/thd"
)

type thdOptions struct {
	freq      float64
	level     float64
	fftSize   int
	harmonics int
	window    string
}

func thdCommand(a *app) *cobra.Command {
	var opts thdOptions

	cmd := &cobra.Command{
		Use:   "thd",
		Short: "Measure the harmonic distortion of the configured chain",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTHD(opts)
		},
	}

	cmd.Flags().Float64("samplerate", 0, "Sample rate in Hz")
	cmd.Flags().Float64Var(&opts.freq, "freq", 1000, "Test tone frequency in Hz")
	cmd.Flags().Float64Var(&opts.level, "level", 0.5, "Test tone amplitude")
	cmd.Flags().IntVar(&opts.fftSize, "fftsize", 8192, "FFT size, a power of two")
	cmd.Flags().IntVar(&opts.harmonics, "harmonics", 9, "Number of harmonics to evaluate, 0 for all below Nyquist")
	cmd.Flags().StringVar(&opts.window, "window", window.TypeHann.String(), fmt.Sprintf("Analysis window: %v", window.Names()))

	return cmd
}

func (a *app) runTHD(opts thdOptions) error {
	win, err := window.ParseType(opts.window)
	if err != nil {
		return err
	}

	sr := a.settings.Render.SampleRate

	chain, err := effectchain.Build(a.registry, effectchain.Context{SampleRate: float32(sr)}, a.settings.Effects)
	if err != nil {
		return err
	}

	res, err := thd.Measure(chainSystem{chain}, thd.Config{
		SampleRate:      sr,
		FFTSize:         opts.fftSize,
		FundamentalFreq: opts.freq,
		Amplitude:       opts.level,
		RangeUpperFreq:  sr / 2,
		Window:          win,
		MaxHarmonics:    opts.harmonics,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "fundamental\t%.2f Hz\n", res.FundamentalFreq)
	fmt.Fprintf(tw, "thd\t%.4f %%\t%.2f dB\n", res.THD*100, res.THD_dB)
	fmt.Fprintf(tw, "thd+n\t%.4f %%\t%.2f dB\n", res.THDN*100, res.THDN_dB)
	fmt.Fprintf(tw, "odd\t%.4f %%\n", res.OddHD*100)
	fmt.Fprintf(tw, "even\t%.4f %%\n", res.EvenHD*100)
	fmt.Fprintf(tw, "sinad\t%.2f dB\n", res.SINAD)

	for i, h := range res.Harmonics {
		fmt.Fprintf(tw, "h%d\t%.4f %%\n", i+2, h*100)
	}

	return tw.Flush()
}
