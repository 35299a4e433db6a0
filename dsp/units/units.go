// Package units converts between musical, temporal and level units used by
// hosts when driving the effects.
package units

import "math"

const (
	referenceNote = 69
	referenceFreq = 440.0

	// minLinearLevel floors LinearToDB at -140 dB.
	minLinearLevel = 1e-7
)

// MIDIToFreq returns the equal-tempered frequency of a MIDI note with A4
// (note 69) at 440 Hz.
func MIDIToFreq(note uint8) float32 {
	return float32(referenceFreq * math.Exp2((float64(note)-referenceNote)/12))
}

// FreqToMIDI returns the fractional MIDI note number of freq.
// Non-positive frequencies return -Inf or NaN as math.Log2 does.
func FreqToMIDI(freq float32) float32 {
	return float32(referenceNote + 12*math.Log2(float64(freq)/referenceFreq))
}

// SemitonesToRatio converts a pitch offset in semitones to a frequency ratio.
func SemitonesToRatio(semitones float32) float32 {
	return float32(math.Exp2(float64(semitones) / 12))
}

// TimeToSampleIndex converts seconds to a whole sample index, truncating.
// Negative or NaN products return 0.
func TimeToSampleIndex(seconds, sampleRate float32) int {
	idx := seconds * sampleRate
	if !(idx > 0) {
		return 0
	}

	if float64(idx) >= math.MaxInt32 {
		return math.MaxInt32
	}

	return int(idx)
}

// SampleIndexToTime converts a sample index to seconds.
func SampleIndexToTime(index int, sampleRate float32) float32 {
	return float32(index) / sampleRate
}

// LinearToDB converts an amplitude to decibels. Levels below 1e-7,
// including zero and negatives, read as -140 dB.
func LinearToDB(amplitude float32) float32 {
	return float32(20 * math.Log10(math.Max(float64(amplitude), minLinearLevel)))
}

// DBToLinear converts decibels to an amplitude.
func DBToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}
