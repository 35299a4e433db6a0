package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-sampler/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	// Create a lowpass-like biquad section.
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	// Process an impulse.
	for i := range 6 {
		var x float32
		if i == 0 {
			x = 1
		}

		y := s.ProcessSample(x)
		fmt.Printf("y[%d] = %.4f\n", i, y)
	}
	// Output:
	// y[0] = 0.2500
	// y[1] = 0.5500
	// y[2] = 0.3500
	// y[3] = 0.0480
	// y[4] = -0.0044
	// y[5] = -0.0028
}

func ExampleLowPass() {
	c := biquad.LowPass(1000, 0.7071067811865476, 48000)

	fmt.Printf("1 kHz: %+.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// 1 kHz: -3.01 dB
}
