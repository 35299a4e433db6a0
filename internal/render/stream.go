package render

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// BytesPerSample is the size of one float32 little-endian frame.
const BytesPerSample = 4

// Stream exposes a Session as an io.Reader of mono float32 little-endian
// samples, the format an oto player pulls from its own goroutine.
type Stream struct {
	mu      sync.Mutex
	session *Session
	buf     []float32
}

// NewStream wraps session.
func NewStream(session *Session) *Stream {
	return &Stream{session: session}
}

// Read fills p with whole samples. It returns io.EOF once the session is
// exhausted and io.ErrShortBuffer when p cannot hold a single sample.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Remaining() == 0 {
		return 0, io.EOF
	}

	frames := len(p) / BytesPerSample
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	if cap(s.buf) < frames {
		s.buf = make([]float32, frames)
	}

	samples := s.buf[:frames]
	n := s.session.Next(samples)

	for i, x := range samples[:n] {
		binary.LittleEndian.PutUint32(p[i*BytesPerSample:], math.Float32bits(x))
	}

	return n * BytesPerSample, nil
}

// SetGain changes the master gain target while the stream is being read.
func (s *Stream) SetGain(gain float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Voice().SetGain(gain)
}

// Position returns the number of ticks delivered so far.
func (s *Stream) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Position()
}

// DecodeFloat32LE converts a little-endian float32 byte stream back into
// samples. A trailing partial frame is ignored.
func DecodeFloat32LE(b []byte) []float32 {
	out := make([]float32, len(b)/BytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*BytesPerSample:]))
	}

	return out
}
