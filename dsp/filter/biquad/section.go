package biquad

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form I processing on float32 samples.
type Section struct {
	coeffs Coefficients

	b0, b1, b2 float32
	a1, a2     float32

	x1, x2 float32
	y1, y2 float32
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(c)
	return s
}

// SetCoefficients replaces the transfer function. History is kept so a
// parameter change mid-stream does not restart the filter.
func (s *Section) SetCoefficients(c Coefficients) {
	s.coeffs = c
	s.b0 = float32(c.B0)
	s.b1 = float32(c.B1)
	s.b2 = float32(c.B2)
	s.a1 = float32(c.A1)
	s.a2 = float32(c.A2)
}

// Coefficients returns the coefficients currently in use.
func (s *Section) Coefficients() Coefficients {
	return s.coeffs
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float32) float32 {
	y := s.b0*x + s.b1*s.x1 + s.b2*s.x2 - s.a1*s.y1 - s.a2*s.y2

	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y

	return y
}

// Reset clears the input and output history to zero.
func (s *Section) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns the current history as [x1, x2, y1, y2].
func (s *Section) State() [4]float32 {
	return [4]float32{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores a previously saved history.
func (s *Section) SetState(state [4]float32) {
	s.x1, s.x2 = state[0], state[1]
	s.y1, s.y2 = state[2], state[3]
}
