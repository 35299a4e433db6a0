// Package render is the host side of the effects engine. It drives a
// per-sample effect chain and an amplitude envelope through a source signal,
// applies a smoothed master gain and delivers the result as a float32 slice,
// a WAV file or a little-endian float32 byte stream for real-time playback.
package render
