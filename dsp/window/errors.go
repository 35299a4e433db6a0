package window

import "errors"

var (
	errUnknownType      = errors.New("window: unknown type")
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
)
