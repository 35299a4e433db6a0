package delay

import "fmt"

// Line is a circular delay line.
type Line struct {
	buffer   []float32
	writePos int
}

// New returns a delay line of the given initial size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{buffer: make([]float32, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// WritePos returns the index the next Write will store into.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write writes one sample.
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float32 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}

	return d.buffer[readPos]
}

// Grow enlarges the buffer to size samples. The stored history keeps its
// temporal order and ends just before the write cursor, which restarts at 0,
// so Read(k) returns the same sample before and after the call. Requests
// that do not exceed the current length are ignored.
func (d *Line) Grow(size int) {
	old := d.buffer
	if size <= len(old) {
		return
	}

	grown := make([]float32, size)
	offset := size - len(old)

	for i := range old {
		grown[offset+i] = old[(d.writePos+i)%len(old)]
	}

	d.buffer = grown
	d.writePos = 0
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
