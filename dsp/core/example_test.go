package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-sampler/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleClamp32() {
	fmt.Println(core.Clamp32(1.5, 0, 1), core.Clamp32(-2, 0, 1))

	// Output:
	// 1 0
}
