// Package core holds the numeric helpers shared by the processors:
// clamping that never fails, tolerance comparison, dB conversion, and the
// processing configuration carried by host render loops.
package core
