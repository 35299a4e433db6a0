package effectchain

// Context provides environmental information that effect factories need.
type Context struct {
	SampleRate float32
}
