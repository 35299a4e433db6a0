package render

import (
	"errors"
	"log/slog"

	"github.com/tphakala/simd/f32"

	"github.com/cwbudde/algo-sampler/dsp/effectchain"
	"github.com/cwbudde/algo-sampler/dsp/envelope"
	"github.com/cwbudde/algo-sampler/dsp/param"
	"github.com/cwbudde/algo-sampler/internal/logging"
)

var (
	errNilChain    = errors.New("render: nil effect chain")
	errNilEnvelope = errors.New("render: nil envelope")
	errNilVoice    = errors.New("render: nil voice")
)

// Voice combines an effect chain, an amplitude envelope and a smoothed
// master gain. The chain and the envelope advance exactly once per tick.
type Voice struct {
	chain  *effectchain.Chain
	env    *envelope.Envelope
	gain   *param.Smoother
	logger *slog.Logger
}

// NewVoice wires the parts of a voice together. A nil gain smoother selects
// a fixed unity gain.
func NewVoice(chain *effectchain.Chain, env *envelope.Envelope, gain *param.Smoother, logger *slog.Logger) (*Voice, error) {
	if chain == nil {
		return nil, errNilChain
	}

	if env == nil {
		return nil, errNilEnvelope
	}

	if gain == nil {
		gain = param.NewSmoother(1, 1)
	}

	return &Voice{
		chain:  chain,
		env:    env,
		gain:   gain,
		logger: logging.Module(logger, "voice"),
	}, nil
}

// NoteOn starts or retriggers the envelope.
func (v *Voice) NoteOn() {
	v.env.Trigger()
	v.logger.Debug("note on", "level", v.env.Level())
}

// NoteOff moves the envelope into its release stage.
func (v *Voice) NoteOff() {
	v.env.Release()
	v.logger.Debug("note off", "stage", v.env.Stage().String(), "level", v.env.Level())
}

// Active reports whether the envelope still produces output.
func (v *Voice) Active() bool { return v.env.IsActive() }

// SetGain sets the master gain target. The change is smoothed.
func (v *Voice) SetGain(gain float32) { v.gain.SetTarget(gain) }

// Chain returns the effect chain.
func (v *Voice) Chain() *effectchain.Chain { return v.chain }

// Envelope returns the amplitude envelope.
func (v *Voice) Envelope() *envelope.Envelope { return v.env }

// Reset clears the chain, silences the envelope and settles the gain on its
// target.
func (v *Voice) Reset() {
	v.chain.ResetAll()
	v.env.Reset()
	v.gain.Reset(v.gain.Target())
}

// Render processes min(len(dst), len(src)) ticks and returns that count.
// dst and src may alias.
func (v *Voice) Render(dst, src []float32) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}

	for i := range n {
		wet := v.chain.Process(src[i])
		dst[i] = wet * v.env.Process()
	}

	v.applyGain(dst[:n])

	return n
}

func (v *Voice) applyGain(block []float32) {
	if v.gain.Current() == v.gain.Target() {
		if g := v.gain.Target(); g != 1 {
			f32.Scale(block, block, g)
		}

		return
	}

	for i := range block {
		block[i] *= v.gain.Process()
	}
}
