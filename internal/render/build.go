package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-sampler/dsp/core"
	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/dsp/envelope"
	"github.com/cwbudde/algo-sampler/dsp/param"
	"github.com/cwbudde/algo-sampler/dsp/resample"
	"github.com/cwbudde/algo-sampler/dsp/signal"
	"github.com/cwbudde/algo-sampler/internal/config"
	"github.com/cwbudde/algo-sampler/internal/logging"
)

// NewVoiceFromSettings builds the chain from s.Effects using reg and pairs it
// with an envelope and a master gain that fades in from silence.
func NewVoiceFromSettings(s *config.Settings, reg *effectchain.Registry, logger *slog.Logger) (*Voice, error) {
	if s == nil {
		return nil, errors.New("render: nil settings")
	}

	sr := float32(s.Render.SampleRate)

	chain, err := effectchain.Build(reg, effectchain.Context{SampleRate: sr}, s.Effects)
	if err != nil {
		return nil, fmt.Errorf("render: build chain: %w", err)
	}

	env := envelope.New(sr)
	env.SetParameters(
		float32(s.Envelope.Attack),
		float32(s.Envelope.Decay),
		float32(s.Envelope.Hold),
		float32(s.Envelope.Sustain),
		float32(s.Envelope.Release),
	)

	gain := param.NewSmoother(0, param.FactorForTime(float32(s.Master.Smoothing), sr))
	gain.SetTarget(float32(s.Master.Gain))

	return NewVoice(chain, env, gain, logger)
}

// LoadSource returns exactly s.TotalSamples() source ticks, read from
// s.Source.File or generated from the configured waveform. File input is
// converted to the render rate when needed, then truncated or padded with
// silence to that length.
func LoadSource(s *config.Settings) ([]float32, error) {
	total := s.TotalSamples()

	if s.Source.File != "" {
		data, rate, err := ReadWAV(s.Source.File)
		if err != nil {
			return nil, err
		}

		if float64(rate) != s.Render.SampleRate {
			data, err = resample.Convert(data, float64(rate), s.Render.SampleRate,
				resample.WithQuality(s.ResampleQuality()))
			if err != nil {
				return nil, fmt.Errorf("render: resample %s: %w", s.Source.File, err)
			}
		}

		out := make([]float32, total)
		copy(out, data)

		return out, nil
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(s.Render.SampleRate)},
		signal.WithSeed(s.Source.Seed),
	)

	return gen.Generate(s.Source.Waveform, s.SourceFrequency(), s.Source.Amplitude, total)
}

// NewSessionFromSettings assembles a ready-to-run session from s.
func NewSessionFromSettings(s *config.Settings, reg *effectchain.Registry, logger *slog.Logger) (*Session, error) {
	voice, err := NewVoiceFromSettings(s, reg, logger)
	if err != nil {
		return nil, err
	}

	src, err := LoadSource(s)
	if err != nil {
		return nil, err
	}

	logging.Module(logger, "render").Debug("session ready",
		"effects", voice.Chain().Names(),
		"ticks", len(src),
		"note_off", s.NoteOffSample())

	sess, err := NewSession(voice, src, s.NoteOffSample(), logger)
	if err != nil {
		return nil, err
	}

	sess.MeasureLoudness(s.Render.SampleRate)

	return sess, nil
}
