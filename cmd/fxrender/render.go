package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sampler/internal/render"
	"github.com/cwbudde/algo-sampler/measure/loudness"
	timestats "github.com/cwbudde/algo-sampler/stats/time"
)

func renderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the configured source through the chain into a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output WAV path")
	cmd.Flags().Int("bitdepth", 0, "Output bit depth: 16, 24 or 32")
	cmd.Flags().String("dither", "", "Dither before quantization: none, rectangular, triangular or gaussian")
	cmd.Flags().Bool("noiseshaping", false, "Shape the quantization noise towards high frequencies")

	return cmd
}

func (a *app) runRender(cmd *cobra.Command) error {
	s := a.settings
	logger := a.logger.With("module", "render")

	session, err := render.NewSessionFromSettings(s, a.registry, a.logger)
	if err != nil {
		return err
	}

	start := time.Now()

	out, err := session.Run(cmd.Context(), s.ProcessorConfig().BlockSize)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	err = render.WriteWAV(s.Render.Output, out, int(s.Render.SampleRate), s.Render.BitDepth,
		render.WithDither(s.DitherType(), uint64(s.Source.Seed)),
		render.WithNoiseShaping(s.Render.NoiseShaping))
	if err != nil {
		return err
	}

	logger.Info("wrote output",
		"path", s.Render.Output,
		"ticks", len(out),
		"dither", s.DitherType(),
		"elapsed", elapsed.Round(time.Millisecond))

	return printStats(a, s.Render.Output, session.Stats(), session.Loudness(), elapsed)
}

func printStats(a *app, path string, st timestats.Stats, m *loudness.Meter, elapsed time.Duration) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "output\t%s\n", path)
	fmt.Fprintf(tw, "samples\t%d\n", st.Length)
	fmt.Fprintf(tw, "peak\t%.2f dBFS\n", st.Peak_dB)
	fmt.Fprintf(tw, "rms\t%.2f dBFS\n", st.RMS_dB)
	fmt.Fprintf(tw, "crest\t%.2f dB\n", st.CrestFactor_dB)
	fmt.Fprintf(tw, "dc\t%.6f\n", st.DC)

	if m != nil {
		fmt.Fprintf(tw, "loudness\t%.1f LUFS\n", m.Integrated())
		fmt.Fprintf(tw, "short-term\t%.1f LUFS\n", m.ShortTerm())
	}

	fmt.Fprintf(tw, "elapsed\t%s\n", elapsed.Round(time.Millisecond))

	return tw.Flush()
}
