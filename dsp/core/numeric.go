package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp32 is the float32 counterpart of Clamp used by the per-sample
// processors. NaN maps to min so that every setter stays total.
func Clamp32(value, min, max float32) float32 {
	if min > max {
		min, max = max, min
	}

	if math.IsNaN(float64(value)) || value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// TypeCode converts a numeric selector into an integer code the way a
// saturating float-to-int cast would. Non-finite values and values outside
// the int32 range return -1, which callers map to their default variant.
func TypeCode(value float32) int {
	v := float64(value)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}

	if v <= math.MinInt32 || v >= math.MaxInt32 {
		return -1
	}

	return int(v)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float32) float32 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
