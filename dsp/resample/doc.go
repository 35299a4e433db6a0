// Package resample converts float32 sample streams between rates using a
// rational polyphase FIR with Kaiser-windowed sinc taps.
//
// Quality modes:
//   - QualityFast: 16 taps per phase, ~55 dB stopband
//   - QualityBalanced: 32 taps per phase, ~75 dB stopband (default)
//   - QualityBest: 64 taps per phase, ~90 dB stopband
//
// A Resampler keeps history between Process calls so it can run on blocks.
// Convert is the one-shot form used for whole files: it removes the filter
// latency and returns round(len*outRate/inRate) samples.
package resample
