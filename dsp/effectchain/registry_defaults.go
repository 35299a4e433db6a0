package effectchain

import "github.com/cwbudde/algo-sampler/dsp/effects"

// DefaultRegistry returns a Registry with the built-in "filter", "delay"
// and "distortion" effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("filter", func(ctx Context) (effects.Effect, error) {
		return effects.NewDefaultFilter(ctx.SampleRate), nil
	},
		ParamInfo{Name: "cutoff", Min: 20, Max: 0.49 * 44100, MaxRateRatio: 0.49, Default: 1000},
		ParamInfo{Name: "resonance", Min: 0.1, Max: 20, Default: 0.707},
		ParamInfo{Name: "type", Min: 0, Max: 3, Default: 0},
	)
	r.MustRegister("delay", func(ctx Context) (effects.Effect, error) {
		return effects.NewDefaultDelay(ctx.SampleRate), nil
	},
		ParamInfo{Name: "time", Min: 0, Max: 10, Default: 0.25},
		ParamInfo{Name: "feedback", Min: 0, Max: 0.99, Default: 0.35},
		ParamInfo{Name: "mix", Min: 0, Max: 1, Default: 0.25},
	)
	r.MustRegister("distortion", func(_ Context) (effects.Effect, error) {
		return effects.NewDefaultDistortion(), nil
	},
		ParamInfo{Name: "drive", Min: 1, Max: 100, Default: 4},
		ParamInfo{Name: "mix", Min: 0, Max: 1, Default: 1},
		ParamInfo{Name: "output_gain", Min: 0, Max: 1, Default: 0.5},
		ParamInfo{Name: "type", Min: 0, Max: 4, Default: 0},
		ParamInfo{Name: "bit_depth", Min: 1, Max: 16, Default: 8},
	)

	return r
}
