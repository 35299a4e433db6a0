package envelope_test

import (
	"fmt"

	"github.com/cwbudde/algo-sampler/dsp/envelope"
)

func ExampleEnvelope() {
	env := envelope.New(100)
	env.SetParameters(0.01, 0.01, 0, 0.5, 0.01)
	env.Trigger()

	for range 3 {
		level := env.Process()
		fmt.Printf("%.2f %s\n", level, env.Stage())
	}

	env.Release()
	level := env.Process()
	fmt.Printf("%.2f %s active=%v\n", level, env.Stage(), env.IsActive())
	// Output:
	// 1.00 decay
	// 0.50 sustain
	// 0.50 sustain
	// 0.00 idle active=false
}
