package effectchain

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrUnknownEffect is returned when a spec references an unregistered effect type.
	ErrUnknownEffect = errors.New("unknown effect type")
	// ErrUnknownParameter is returned when an effect rejects a parameter name.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// EffectSpec names one effect and the parameter values to apply after
// construction.
type EffectSpec struct {
	Type   string             `mapstructure:"type"`
	Params map[string]float64 `mapstructure:"params"`
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (s EffectSpec) GetNum(key string, def float64) float64 {
	if s.Params == nil {
		return def
	}

	v, ok := s.Params[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Build creates one effect per spec, applies its parameters in sorted name
// order and returns them as a chain.
func Build(reg *Registry, ctx Context, specs []EffectSpec) (*Chain, error) {
	if reg == nil {
		return nil, errors.New("effectchain: nil registry")
	}

	chain := New()

	for i, spec := range specs {
		factory := reg.Lookup(spec.Type)
		if factory == nil {
			return nil, fmt.Errorf("effectchain: effect %d: %w: %q", i, ErrUnknownEffect, spec.Type)
		}

		fx, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("effectchain: effect %d (%s): %w", i, spec.Type, err)
		}

		for _, name := range slices.Sorted(maps.Keys(spec.Params)) {
			if !fx.SetParameter(name, float32(spec.Params[name])) {
				return nil, fmt.Errorf("effectchain: effect %d (%s): %w: %q", i, spec.Type, ErrUnknownParameter, name)
			}
		}

		chain.Add(fx)
	}

	return chain, nil
}
