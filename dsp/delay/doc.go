// Package delay provides a growable circular delay line for float32 audio.
//
// A [Line] stores the most recent Len() samples. Read(k) returns the sample
// written k ticks ago; Read(0) returns the slot that the next Write will
// overwrite, which holds the sample written Len() ticks ago.
package delay
