// Command fxrender runs the effects engine outside a plugin host.
//
// Usage:
//
//	fxrender [--config file.yaml] [--debug] <command> [flags]
//
// Commands:
//
//	render    render the configured source through the chain into a WAV file
//	play      render in real time to the default audio device
//	response  print the magnitude response of the configured chain
//	thd       measure the harmonic distortion of the configured chain
//	effects   list the registered effects and their parameters
//
// Settings come from built-in defaults, an optional YAML file, FXRENDER_*
// environment variables and flags, in increasing order of precedence.
//
// Examples:
//
//	fxrender render --duration 3 --output out.wav
//	fxrender render --input dry.wav --noteoff 0
//	fxrender play --waveform noise --gain 0.3
//	fxrender response --points 24
//	fxrender thd --freq 440 --level 0.8
//	fxrender effects
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fxrender:", err)
		stop()
		os.Exit(1)
	}
}
