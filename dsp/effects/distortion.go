package effects

import (
	"math"

	"github.com/cwbudde/algo-sampler/dsp/core"
)

const (
	minDistortionDrive      = 1.0
	maxDistortionDrive      = 100.0
	minDistortionBitDepth   = 1
	maxDistortionBitDepth   = 16
	defaultDistortionBits   = 8
	defaultDistortionDrive  = 4.0
	defaultDistortionMix    = 1.0
	defaultDistortionOutput = 0.5
)

// DistortionType selects the waveshaping transfer function.
type DistortionType int

const (
	// Soft is tanh saturation.
	Soft DistortionType = iota
	// Hard clips at ±1.
	Hard
	// Foldback mirrors excursions beyond ±1 back into range.
	Foldback
	// Sine maps the driven signal through sin(πx).
	Sine
	// Bitcrush quantizes to 2^(bits-1) levels per unit.
	Bitcrush
)

// DistortionTypeFromCode maps a numeric selector to a DistortionType.
// Codes outside 0..4 select Soft.
func DistortionTypeFromCode(code float32) DistortionType {
	switch c := core.TypeCode(code); c {
	case 1, 2, 3, 4:
		return DistortionType(c)
	default:
		return Soft
	}
}

func (t DistortionType) String() string {
	switch t {
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	case Foldback:
		return "foldback"
	case Sine:
		return "sine"
	case Bitcrush:
		return "bitcrush"
	default:
		return "unknown"
	}
}

// Distortion is a memoryless waveshaper with dry/wet mix and output gain.
//
//	out = (x*(1-mix) + shape(drive*x)*mix) * outputGain
type Distortion struct {
	typ        DistortionType
	drive      float32
	mix        float32
	outputGain float32
	bitDepth   int
	crushScale float64
}

// NewDistortion creates a distortion. drive is clamped to [1, 100], mix and
// outputGain to [0, 1]. The bit depth used by Bitcrush starts at 8.
func NewDistortion(typ DistortionType, drive, mix, outputGain float32) *Distortion {
	d := &Distortion{
		drive:      core.Clamp32(drive, minDistortionDrive, maxDistortionDrive),
		mix:        core.Clamp32(mix, 0, 1),
		outputGain: core.Clamp32(outputGain, 0, 1),
	}
	d.SetType(typ)
	d.setBits(defaultDistortionBits)

	return d
}

// NewDefaultDistortion returns a moderately driven tanh saturator.
func NewDefaultDistortion() *Distortion {
	return NewDistortion(Soft, defaultDistortionDrive, defaultDistortionMix, defaultDistortionOutput)
}

// Process shapes one sample.
func (d *Distortion) Process(sample float32) float32 {
	shaped := d.shape(d.drive * sample)
	return (sample*(1-d.mix) + shaped*d.mix) * d.outputGain
}

// Reset is a no-op; the shaper keeps no state between samples.
func (d *Distortion) Reset() {}

// SetParameter handles "drive", "mix", "output_gain", "type" and "bit_depth".
func (d *Distortion) SetParameter(name string, value float32) bool {
	switch name {
	case "drive":
		d.SetDrive(value)
	case "mix":
		d.SetMix(value)
	case "output_gain":
		d.SetOutputGain(value)
	case "type":
		d.SetType(DistortionTypeFromCode(value))
	case "bit_depth":
		d.SetBitDepth(value)
	default:
		return false
	}

	return true
}

// Name returns "Distortion".
func (d *Distortion) Name() string { return "Distortion" }

// SetDrive sets input gain applied before shaping, in [1, 100].
func (d *Distortion) SetDrive(drive float32) {
	d.drive = core.Clamp32(drive, minDistortionDrive, maxDistortionDrive)
}

// SetMix sets wet amount in [0, 1].
func (d *Distortion) SetMix(mix float32) {
	d.mix = core.Clamp32(mix, 0, 1)
}

// SetOutputGain sets the post-mix gain in [0, 1].
func (d *Distortion) SetOutputGain(gain float32) {
	d.outputGain = core.Clamp32(gain, 0, 1)
}

// SetType switches the transfer function. Unknown types select Soft.
func (d *Distortion) SetType(typ DistortionType) {
	if typ < Soft || typ > Bitcrush {
		typ = Soft
	}

	d.typ = typ
}

// SetBitDepth sets the Bitcrush resolution. The value is truncated to an
// integer in [1, 16].
func (d *Distortion) SetBitDepth(bits float32) {
	d.setBits(int(core.Clamp32(bits, minDistortionBitDepth, maxDistortionBitDepth)))
}

// Type returns the transfer function.
func (d *Distortion) Type() DistortionType { return d.typ }

// Drive returns the input gain.
func (d *Distortion) Drive() float32 { return d.drive }

// Mix returns the wet amount.
func (d *Distortion) Mix() float32 { return d.mix }

// OutputGain returns the post-mix gain.
func (d *Distortion) OutputGain() float32 { return d.outputGain }

// BitDepth returns the Bitcrush resolution in bits.
func (d *Distortion) BitDepth() int { return d.bitDepth }

func (d *Distortion) setBits(bits int) {
	d.bitDepth = bits
	d.crushScale = math.Ldexp(1, bits-1)
}

func (d *Distortion) shape(x float32) float32 {
	switch d.typ {
	case Hard:
		return min(max(x, -1), 1)
	case Foldback:
		return fold(x)
	case Sine:
		return float32(math.Sin(math.Pi * float64(x)))
	case Bitcrush:
		return float32(math.Round(float64(x)*d.crushScale) / d.crushScale)
	default:
		return float32(math.Tanh(float64(x)))
	}
}

// fold reflects x across ±1 until it lies inside [-1, 1]. Repeated
// reflection is a triangle wave of period 4, evaluated in closed form.
func fold(x float32) float32 {
	v := float64(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	if v >= -1 && v <= 1 {
		return x
	}

	u := math.Mod(v+1, 4)
	if u < 0 {
		u += 4
	}

	if u <= 2 {
		return float32(u - 1)
	}

	return float32(3 - u)
}
