package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func effectsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the registered effects and their parameters",
		Long: `List every registered effect with its parameter ranges.
Rate-dependent bounds such as the filter cutoff are shown for the configured
sample rate.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.listEffects()
		},
	}

	cmd.Flags().Float64("samplerate", 0, "Sample rate in Hz")

	return cmd
}

func (a *app) listEffects() error {
	sr := a.settings.Render.SampleRate

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "EFFECT\tPARAMETER\tMIN\tMAX @ %g Hz\tDEFAULT\n", sr)

	for _, name := range a.registry.Types() {
		for _, p := range a.registry.Params(name) {
			lo, hi := p.Bounds(sr)
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\n", name, p.Name, lo, hi, p.Default)
		}
	}

	return tw.Flush()
}
