package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/internal/config"
	"github.com/cwbudde/algo-sampler/internal/logging"
)

// app carries state shared by all subcommands once PersistentPreRunE ran.
type app struct {
	configFile string
	debug      bool

	out      io.Writer
	errOut   io.Writer
	v        *viper.Viper
	settings *config.Settings
	registry *effectchain.Registry
	logger   *slog.Logger
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"debug":        "debug",
	"samplerate":   "render.samplerate",
	"blocksize":    "render.blocksize",
	"duration":     "render.duration",
	"noteoff":      "render.noteoff",
	"output":       "render.output",
	"bitdepth":     "render.bitdepth",
	"dither":       "render.dither",
	"noiseshaping": "render.noiseshaping",
	"input":        "source.file",
	"resample":     "source.resample",
	"waveform":     "source.waveform",
	"note":         "source.note",
	"frequency":    "source.frequency",
	"amplitude":    "source.amplitude",
	"seed":         "source.seed",
	"attack":       "envelope.attack",
	"decay":        "envelope.decay",
	"hold":         "envelope.hold",
	"sustain":      "envelope.sustain",
	"release":      "envelope.release",
	"gain":         "master.gain",
	"smoothing":    "master.smoothing",
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:      out,
		errOut:   errOut,
		registry: effectchain.DefaultRegistry(),
	}

	rootCmd := &cobra.Command{
		Use:           "fxrender",
		Short:         "Render audio through the per-sample effects engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.initialize(cmd)
	}

	rootCmd.AddCommand(
		renderCommand(a),
		playCommand(a),
		responseCommand(a),
		thdCommand(a),
		effectsCommand(a),
	)

	return rootCmd
}

// initialize loads settings with the flags of cmd bound on top.
func (a *app) initialize(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, _ := logging.New(a.errOut, settings.Debug)

	a.v = v
	a.settings = settings
	a.logger = logger

	a.logger.Debug("settings loaded",
		"module", "cli",
		"command", cmd.Name(),
		"config", v.ConfigFileUsed(),
		"samplerate", settings.Render.SampleRate,
		"effects", len(settings.Effects))

	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	return nil
}

// addSourceFlags registers the flags shared by the rendering commands. Their
// defaults are only placeholders; unset flags fall through to the config.
func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("samplerate", 0, "Sample rate in Hz")
	f.Int("blocksize", 0, "Ticks rendered per block")
	f.Float64("duration", 0, "Render length in seconds")
	f.Float64("noteoff", 0, "Release time in seconds after start, 0 holds the note")
	f.String("input", "", "Mono or stereo WAV file used instead of the generated source")
	f.String("resample", "", "Input file conversion quality: fast, balanced or best")
	f.String("waveform", "", "Generated source: sine, saw, noise or impulse")
	f.Int("note", -1, "Source pitch as a MIDI note, overrides --frequency")
	f.Float64("frequency", 0, "Source frequency in Hz")
	f.Float64("amplitude", 0, "Source amplitude in [0, 1]")
	f.Int64("seed", 0, "Noise seed")
	f.Float64("attack", 0, "Envelope attack in seconds")
	f.Float64("decay", 0, "Envelope decay in seconds")
	f.Float64("hold", 0, "Envelope hold in seconds")
	f.Float64("sustain", 0, "Envelope sustain level in [0, 1]")
	f.Float64("release", 0, "Envelope release in seconds")
	f.Float64("gain", 0, "Master gain")
	f.Float64("smoothing", 0, "Master gain smoothing time in seconds")
}
