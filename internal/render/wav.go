package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-sampler/dsp/dither"
)

var (
	// ErrInvalidWAV is returned when a file is not a readable PCM WAV file.
	ErrInvalidWAV = errors.New("render: invalid WAV file")
	// ErrUnsupportedBitDepth is returned for bit depths other than 16, 24 and 32.
	ErrUnsupportedBitDepth = errors.New("render: unsupported bit depth")
)

const wavFormatPCM = 1

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

type wavConfig struct {
	dither       dither.DitherType
	seed         uint64
	noiseShaping bool
}

// WAVOption configures EncodeWAV and WriteWAV.
type WAVOption func(*wavConfig)

// WithDither adds dither noise of type dt before quantization. The seed
// makes the noise reproducible.
func WithDither(dt dither.DitherType, seed uint64) WAVOption {
	return func(c *wavConfig) {
		c.dither = dt
		c.seed = seed
	}
}

// WithNoiseShaping feeds the quantization error back into the next sample.
func WithNoiseShaping(enabled bool) WAVOption {
	return func(c *wavConfig) {
		c.noiseShaping = enabled
	}
}

// EncodeWAV writes samples as a mono integer PCM WAV stream. Samples are
// rounded to the nearest code and clipped to full scale; without options
// no dither is added.
func EncodeWAV(w io.WriteSeeker, samples []float32, sampleRate, bitDepth int, opts ...WAVOption) error {
	if _, err := fullScale(bitDepth); err != nil {
		return err
	}

	if sampleRate <= 0 {
		return fmt.Errorf("render: sample rate must be > 0: %d", sampleRate)
	}

	cfg := wavConfig{dither: dither.DitherNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	quant, err := dither.NewQuantizer(
		dither.WithBitDepth(bitDepth),
		dither.WithDitherType(cfg.dither),
		dither.WithSeed(cfg.seed),
		dither.WithErrorFeedback(cfg.noiseShaping),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	data := make([]int, len(samples))
	quant.ProcessBlock(data, samples)

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, wavFormatPCM)

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("render: write WAV data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("render: finalize WAV: %w", err)
	}

	return nil
}

// WriteWAV creates path, including missing parent directories, and encodes
// samples into it.
func WriteWAV(path string, samples []float32, sampleRate, bitDepth int, opts ...WAVOption) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: create directories: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}

	if err := EncodeWAV(f, samples, sampleRate, bitDepth, opts...); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// DecodeWAV reads a PCM WAV stream into mono float32 samples in [-1, 1).
// Multi-channel input is averaged down to one channel.
func DecodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	decoder := wav.NewDecoder(r)
	decoder.ReadInfo()

	if !decoder.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}

	scale, err := fullScale(int(decoder.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	channels := int(decoder.NumChans)
	if channels < 1 {
		return nil, 0, fmt.Errorf("%w: %d channels", ErrInvalidWAV, channels)
	}

	sampleRate := int(decoder.SampleRate)
	buf := &audio.IntBuffer{
		Data:   make([]int, 4096*channels),
		Format: &audio.Format{SampleRate: sampleRate, NumChannels: channels},
	}

	var out []float32

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, 0, fmt.Errorf("render: read WAV data: %w", err)
		}

		if n == 0 {
			break
		}

		for i := 0; i+channels <= n; i += channels {
			sum := 0
			for c := range channels {
				sum += buf.Data[i+c]
			}

			out = append(out, float32(float64(sum)/float64(channels)/scale))
		}
	}

	return out, sampleRate, nil
}

// ReadWAV opens path and decodes it with DecodeWAV.
func ReadWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("render: open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeWAV(f)
}
