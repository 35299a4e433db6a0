package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-sampler/internal/logging"
	"github.com/cwbudde/algo-sampler/measure/loudness"
	timestats "github.com/cwbudde/algo-sampler/stats/time"
)

// Session plays a fixed-length source through a Voice. The note starts on
// the first rendered tick and is released at the configured note-off tick.
type Session struct {
	voice    *Voice
	src      []float32
	pos      int
	noteOff  int
	started  bool
	released bool
	stats    *timestats.StreamingStats
	meter    *loudness.Meter
	logger   *slog.Logger
}

// NewSession returns a session over src. noteOff is the tick of the release,
// or a negative value to hold the note until the end.
func NewSession(voice *Voice, src []float32, noteOff int, logger *slog.Logger) (*Session, error) {
	if voice == nil {
		return nil, errNilVoice
	}

	return &Session{
		voice:   voice,
		src:     src,
		noteOff: noteOff,
		stats:   timestats.NewStreamingStats(),
		logger:  logging.Module(logger, "session"),
	}, nil
}

// Len returns the total number of ticks.
func (s *Session) Len() int { return len(s.src) }

// Position returns the number of ticks rendered so far.
func (s *Session) Position() int { return s.pos }

// Remaining returns the number of ticks left.
func (s *Session) Remaining() int { return len(s.src) - s.pos }

// Voice returns the voice driven by the session.
func (s *Session) Voice() *Voice { return s.voice }

// Stats returns statistics over everything rendered so far.
func (s *Session) Stats() timestats.Stats { return s.stats.Result() }

// MeasureLoudness attaches a loudness meter running at sampleRate. Every
// tick rendered afterwards is fed to it.
func (s *Session) MeasureLoudness(sampleRate float64) {
	s.meter = loudness.NewMeter(loudness.WithSampleRate(sampleRate))
	s.meter.StartIntegration()
}

// Loudness returns the attached meter, or nil when loudness is not measured.
func (s *Session) Loudness() *loudness.Meter { return s.meter }

// Next renders up to len(dst) ticks and returns how many were written. It
// returns 0 once the source is exhausted.
func (s *Session) Next(dst []float32) int {
	n := min(len(dst), s.Remaining())
	if n <= 0 {
		return 0
	}

	if !s.started {
		s.started = true
		s.voice.NoteOn()
	}

	done := 0
	for done < n {
		end := n

		if !s.released && s.noteOff >= 0 {
			if s.noteOff <= s.pos {
				s.released = true
				s.voice.NoteOff()
			} else if until := s.noteOff - s.pos; until < n-done {
				end = done + until
			}
		}

		s.voice.Render(dst[done:end], s.src[s.pos:s.pos+end-done])
		s.pos += end - done
		done = end
	}

	s.stats.Update(dst[:n])

	if s.meter != nil {
		s.meter.ProcessBlock(dst[:n])
	}

	return n
}

// Run renders the whole remaining source in blocks of blockSize ticks and
// returns the output. It stops early with ctx's error when ctx is done.
func (s *Session) Run(ctx context.Context, blockSize int) ([]float32, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("render: block size must be > 0: %d", blockSize)
	}

	out := make([]float32, s.Remaining())
	written := 0

	for written < len(out) {
		if err := ctx.Err(); err != nil {
			return out[:written], fmt.Errorf("render: interrupted at tick %d: %w", s.pos, err)
		}

		end := min(written+blockSize, len(out))
		written += s.Next(out[written:end])
	}

	st := s.stats.Result()
	s.logger.Debug("render complete",
		"ticks", written,
		"peak_db", st.Peak_dB,
		"rms_db", st.RMS_dB)

	if s.meter != nil {
		s.logger.Debug("loudness",
			"integrated_lufs", s.meter.Integrated(),
			"short_term_lufs", s.meter.ShortTerm())
	}

	return out, nil
}
