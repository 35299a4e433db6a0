package effectchain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-sampler/dsp/effects"
)

// Factory builds one effect instance.
type Factory func(ctx Context) (effects.Effect, error)

// ParamInfo describes one named parameter an effect accepts.
//
// When MaxRateRatio is non-zero the upper bound follows the sample rate and
// Max only applies when no rate is known.
type ParamInfo struct {
	Name         string
	Min          float64
	Max          float64
	MaxRateRatio float64
	Default      float64
}

// Bounds returns the accepted range at sampleRate.
func (p ParamInfo) Bounds(sampleRate float64) (lo, hi float64) {
	if p.MaxRateRatio > 0 && sampleRate > 0 {
		return p.Min, p.MaxRateRatio * sampleRate
	}

	return p.Min, p.Max
}

type entry struct {
	factory Factory
	params  []ParamInfo
}

// Registry maps effect type names to their factories.
type Registry struct {
	entries map[string]entry
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory for the given effect type together with the
// parameters it understands.
func (r *Registry) Register(effectType string, factory Factory, params ...ParamInfo) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.entries[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.entries[effectType] = entry{factory: factory, params: slices.Clone(params)}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory, params ...ParamInfo) {
	err := r.Register(effectType, factory, params...)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.entries[effectType].factory
}

// Params returns the declared parameters of effectType.
func (r *Registry) Params(effectType string) []ParamInfo {
	return slices.Clone(r.entries[effectType].params)
}

// Types returns the registered effect type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.entries))
	for name := range r.entries {
		types = append(types, name)
	}

	slices.Sort(types)

	return types
}
