// Package config loads the settings of the fxrender host from defaults, an
// optional YAML file, FXRENDER_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-sampler/dsp/core"
	"github.com/cwbudde/algo-sampler/dsp/dither"
	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/dsp/resample"
	"github.com/cwbudde/algo-sampler/dsp/signal"
	"github.com/cwbudde/algo-sampler/dsp/units"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FXRENDER"

// ErrInvalidSetting wraps every validation failure.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the complete host configuration.
type Settings struct {
	Debug    bool                     `mapstructure:"debug"`
	Render   RenderSettings           `mapstructure:"render"`
	Source   SourceSettings           `mapstructure:"source"`
	Envelope EnvelopeSettings         `mapstructure:"envelope"`
	Master   MasterSettings           `mapstructure:"master"`
	Effects  []effectchain.EffectSpec `mapstructure:"effects"`
}

// RenderSettings controls the render loop and its output.
type RenderSettings struct {
	SampleRate   float64 `mapstructure:"samplerate"`
	BlockSize    int     `mapstructure:"blocksize"`
	Duration     float64 `mapstructure:"duration"` // seconds
	NoteOff      float64 `mapstructure:"noteoff"`  // seconds after start, 0 holds the note
	Output       string  `mapstructure:"output"`
	BitDepth     int     `mapstructure:"bitdepth"`
	Dither       string  `mapstructure:"dither"`
	NoiseShaping bool    `mapstructure:"noiseshaping"`
}

// SourceSettings selects the signal fed into the chain. A non-empty File
// takes precedence over the generated waveform and is converted to the
// render rate with the Resample quality when its rate differs.
type SourceSettings struct {
	File      string  `mapstructure:"file"`
	Resample  string  `mapstructure:"resample"`
	Waveform  string  `mapstructure:"waveform"`
	Note      int     `mapstructure:"note"` // MIDI note, -1 uses Frequency
	Frequency float64 `mapstructure:"frequency"`
	Amplitude float64 `mapstructure:"amplitude"`
	Seed      int64   `mapstructure:"seed"`
}

// EnvelopeSettings holds the amplitude envelope stage times in seconds.
type EnvelopeSettings struct {
	Attack  float64 `mapstructure:"attack"`
	Decay   float64 `mapstructure:"decay"`
	Hold    float64 `mapstructure:"hold"`
	Sustain float64 `mapstructure:"sustain"`
	Release float64 `mapstructure:"release"`
}

// MasterSettings controls the smoothed output gain.
type MasterSettings struct {
	Gain      float64 `mapstructure:"gain"`
	Smoothing float64 `mapstructure:"smoothing"` // seconds
}

// DitherType returns the parsed render.dither setting. Validate guarantees
// it is known.
func (s *Settings) DitherType() dither.DitherType {
	dt, _ := dither.ParseDitherType(s.Render.Dither)
	return dt
}

// ResampleQuality returns the parsed source.resample setting.
func (s *Settings) ResampleQuality() resample.Quality {
	q, _ := resample.ParseQuality(s.Source.Resample)
	return q
}

// SourceFrequency returns the generator pitch in Hz: the equal-tempered
// frequency of Source.Note when it is a MIDI note, Source.Frequency otherwise.
func (s *Settings) SourceFrequency() float64 {
	if s.Source.Note >= 0 && s.Source.Note <= 127 {
		return float64(units.MIDIToFreq(uint8(s.Source.Note)))
	}

	return s.Source.Frequency
}

// ProcessorConfig returns the render loop settings as a core config.
func (s *Settings) ProcessorConfig() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(s.Render.SampleRate),
		core.WithBlockSize(s.Render.BlockSize),
	)
}

// TotalSamples returns the render length in ticks.
func (s *Settings) TotalSamples() int {
	return int(math.Round(s.Render.Duration * s.Render.SampleRate))
}

// NoteOffSample returns the tick at which the note is released, or -1 when
// the note is held for the whole render.
func (s *Settings) NoteOffSample() int {
	if s.Render.NoteOff <= 0 {
		return -1
	}

	return int(math.Round(s.Render.NoteOff * s.Render.SampleRate))
}

// SetDefaults registers every key with its default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("render.samplerate", 48000.0)
	v.SetDefault("render.blocksize", 512)
	v.SetDefault("render.duration", 2.0)
	v.SetDefault("render.noteoff", 1.5)
	v.SetDefault("render.output", "fxrender.wav")
	v.SetDefault("render.bitdepth", 16)
	v.SetDefault("render.dither", dither.DitherTriangular.String())
	v.SetDefault("render.noiseshaping", false)

	v.SetDefault("source.file", "")
	v.SetDefault("source.resample", resample.QualityBalanced.String())
	v.SetDefault("source.waveform", "saw")
	v.SetDefault("source.note", -1)
	v.SetDefault("source.frequency", 110.0)
	v.SetDefault("source.amplitude", 0.5)
	v.SetDefault("source.seed", 1)

	v.SetDefault("envelope.attack", 0.01)
	v.SetDefault("envelope.decay", 0.1)
	v.SetDefault("envelope.hold", 0.0)
	v.SetDefault("envelope.sustain", 0.7)
	v.SetDefault("envelope.release", 0.3)

	v.SetDefault("master.gain", 0.8)
	v.SetDefault("master.smoothing", 0.005)

	v.SetDefault("effects", []map[string]any{
		{"type": "filter", "params": map[string]any{"cutoff": 2000.0, "resonance": 1.2}},
		{"type": "distortion", "params": map[string]any{"drive": 3.0, "mix": 0.5}},
		{"type": "delay", "params": map[string]any{"time": 0.25, "feedback": 0.35, "mix": 0.25}},
	})
}

// NewViper returns a viper instance with defaults and environment binding in
// place. When configFile is not empty it is read as YAML.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	return v, nil
}

// Load decodes v into Settings and validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	if v == nil {
		return nil, errors.New("config: nil viper instance")
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate reports the first setting that is out of range.
func (s *Settings) Validate() error {
	r := s.Render
	if !(r.SampleRate >= 8000 && r.SampleRate <= 768000) {
		return invalid("render.samplerate must be in [8000, 768000], got %g", r.SampleRate)
	}

	if r.BlockSize < 1 || r.BlockSize > 65536 {
		return invalid("render.blocksize must be in [1, 65536], got %d", r.BlockSize)
	}

	if !(r.Duration > 0 && r.Duration <= 3600) {
		return invalid("render.duration must be in (0, 3600] seconds, got %g", r.Duration)
	}

	if !(r.NoteOff >= 0) {
		return invalid("render.noteoff must be >= 0, got %g", r.NoteOff)
	}

	if !slices.Contains([]int{16, 24, 32}, r.BitDepth) {
		return invalid("render.bitdepth must be 16, 24 or 32, got %d", r.BitDepth)
	}

	if _, err := dither.ParseDitherType(r.Dither); err != nil {
		return invalid("render.dither %q is not one of %v", r.Dither, dither.Names())
	}

	src := s.Source
	if _, err := resample.ParseQuality(src.Resample); err != nil {
		return invalid("source.resample %q is not fast, balanced or best", src.Resample)
	}

	if src.File == "" {
		if !slices.Contains(signal.Waveforms(), src.Waveform) {
			return invalid("source.waveform %q is not one of %v", src.Waveform, signal.Waveforms())
		}

		if src.Note < -1 || src.Note > 127 {
			return invalid("source.note must be a MIDI note in [0, 127] or -1, got %d", src.Note)
		}

		if f := s.SourceFrequency(); !(f > 0 && f < r.SampleRate/2) {
			return invalid("source frequency must be in (0, %g), got %g", r.SampleRate/2, f)
		}
	}

	if !(src.Amplitude >= 0 && src.Amplitude <= 1) {
		return invalid("source.amplitude must be in [0, 1], got %g", src.Amplitude)
	}

	env := s.Envelope
	for _, f := range []struct {
		key string
		val float64
	}{
		{"envelope.attack", env.Attack},
		{"envelope.decay", env.Decay},
		{"envelope.hold", env.Hold},
		{"envelope.release", env.Release},
	} {
		if !(f.val >= 0 && f.val <= 60) {
			return invalid("%s must be in [0, 60] seconds, got %g", f.key, f.val)
		}
	}

	if !(env.Sustain >= 0 && env.Sustain <= 1) {
		return invalid("envelope.sustain must be in [0, 1], got %g", env.Sustain)
	}

	if !(s.Master.Gain >= 0 && s.Master.Gain <= 4) {
		return invalid("master.gain must be in [0, 4], got %g", s.Master.Gain)
	}

	if !(s.Master.Smoothing >= 0 && s.Master.Smoothing <= 10) {
		return invalid("master.smoothing must be in [0, 10] seconds, got %g", s.Master.Smoothing)
	}

	for i, fx := range s.Effects {
		if strings.TrimSpace(fx.Type) == "" {
			return invalid("effects[%d].type is empty", i)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalidSetting, fmt.Sprintf(format, args...))
}
