// Package dither quantizes float32 samples to integer PCM with optional
// dither noise and first-order error-feedback noise shaping.
package dither

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDitherType is returned by ParseDitherType for unknown names.
var ErrUnknownDitherType = errors.New("dither: unknown dither type")

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular
	// DitherGaussian uses a Gaussian PDF.
	DitherGaussian

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"none", "rectangular", "triangular", "gaussian",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps a case-insensitive name to a DitherType.
func ParseDitherType(name string) (DitherType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}

	return DitherNone, fmt.Errorf("%w: %q", ErrUnknownDitherType, name)
}

// Names lists the accepted dither type names.
func Names() []string {
	return append([]string(nil), ditherTypeNames[:]...)
}
