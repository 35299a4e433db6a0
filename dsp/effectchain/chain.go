package effectchain

import "github.com/cwbudde/algo-sampler/dsp/effects"

// Chain is an ordered sequence of effects.
type Chain struct {
	effects []effects.Effect
}

// New returns a chain holding fx in order. Nil entries are skipped.
func New(fx ...effects.Effect) *Chain {
	c := &Chain{}
	for _, e := range fx {
		c.Add(e)
	}

	return c
}

// Add appends an effect to the end of the chain. Nil is ignored.
func (c *Chain) Add(e effects.Effect) {
	if e == nil {
		return
	}

	c.effects = append(c.effects, e)
}

// Insert places e at index, shifting later effects up. index may equal
// Count to append. It returns false for a nil effect or an index out of
// range.
func (c *Chain) Insert(index int, e effects.Effect) bool {
	if e == nil || index < 0 || index > len(c.effects) {
		return false
	}

	c.effects = append(c.effects, nil)
	copy(c.effects[index+1:], c.effects[index:])
	c.effects[index] = e

	return true
}

// Remove deletes the effect at index. It returns false, leaving the chain
// unchanged, when index is out of range.
func (c *Chain) Remove(index int) bool {
	if index < 0 || index >= len(c.effects) {
		return false
	}

	copy(c.effects[index:], c.effects[index+1:])
	c.effects[len(c.effects)-1] = nil
	c.effects = c.effects[:len(c.effects)-1]

	return true
}

// Process runs sample through every effect in order.
func (c *Chain) Process(sample float32) float32 {
	for _, e := range c.effects {
		sample = e.Process(sample)
	}

	return sample
}

// ResetAll resets every effect in order.
func (c *Chain) ResetAll() {
	for _, e := range c.effects {
		e.Reset()
	}
}

// SetEffectParameter forwards a named parameter to the effect at index.
// It returns false when index is out of range or the effect does not know
// the parameter.
func (c *Chain) SetEffectParameter(index int, name string, value float32) bool {
	if index < 0 || index >= len(c.effects) {
		return false
	}

	return c.effects[index].SetParameter(name, value)
}

// Count returns the number of effects.
func (c *Chain) Count() int {
	return len(c.effects)
}

// Effect returns the effect at index, or nil when index is out of range.
func (c *Chain) Effect(index int) effects.Effect {
	if index < 0 || index >= len(c.effects) {
		return nil
	}

	return c.effects[index]
}

// Names returns the effect names in processing order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.effects))
	for i, e := range c.effects {
		names[i] = e.Name()
	}

	return names
}
