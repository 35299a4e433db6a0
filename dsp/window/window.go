// Package window generates the analysis windows used by the spectral
// measurements.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeRectangular
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop

	typeCount
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name string
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// MainLobeBins is the distance from the peak to the first null in bins.
	MainLobeBins int
	// HighestSidelobe is relative to the main lobe peak in dB.
	HighestSidelobe float64
}

// Cosine-sum coefficients: w(x) = sum_k c[k] * cos(2*pi*k*x), x in [0, 1].
var cosineTerms = [typeCount][]float64{
	TypeHann:                {0.5, -0.5},
	TypeRectangular:         {1},
	TypeHamming:             {0.54, -0.46},
	TypeBlackman:            {0.42, -0.5, 0.08},
	TypeBlackmanHarris4Term: {0.35875, -0.48829, 0.14128, -0.01168},
	TypeFlatTop:             {0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368},
}

var metadataByType = [typeCount]Metadata{
	TypeHann:                {Name: "hann", ENBW: 1.5, MainLobeBins: 2, HighestSidelobe: -31.5},
	TypeRectangular:         {Name: "rectangular", ENBW: 1, MainLobeBins: 1, HighestSidelobe: -13.3},
	TypeHamming:             {Name: "hamming", ENBW: 1.36, MainLobeBins: 2, HighestSidelobe: -42.7},
	TypeBlackman:            {Name: "blackman", ENBW: 1.73, MainLobeBins: 3, HighestSidelobe: -58.1},
	TypeBlackmanHarris4Term: {Name: "blackman-harris", ENBW: 2.0, MainLobeBins: 4, HighestSidelobe: -92},
	TypeFlatTop:             {Name: "flattop", ENBW: 3.77, MainLobeBins: 5, HighestSidelobe: -93},
}

// String returns the window name.
func (t Type) String() string {
	if t.Valid() {
		return metadataByType[t].Name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType maps a case-insensitive window name to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t := range typeCount {
		if metadataByType[t].Name == name {
			return t, nil
		}
	}

	return TypeHann, fmt.Errorf("%w: %q", errUnknownType, name)
}

// Names lists the accepted window names.
func Names() []string {
	names := make([]string, typeCount)
	for t := range typeCount {
		names[t] = metadataByType[t].Name
	}

	return names
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if !t.Valid() {
		return Metadata{}
	}

	return metadataByType[t]
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// produce a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	terms := cosineTerms[TypeRectangular]
	if t.Valid() {
		terms = cosineTerms[t]
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = cosineSum(samplePosition(i, length, cfg.periodic), terms)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// EquivalentNoiseBandwidth returns N*sum(w^2)/sum(w)^2 in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// CoherentGain returns sum(w)/N, the amplitude a bin-centered tone keeps.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

func cosineSum(x float64, terms []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range terms {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
