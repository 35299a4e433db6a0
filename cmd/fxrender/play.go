package main

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sampler/internal/render"
)

func playCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Render the configured source in real time to the default audio device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPlay(cmd)
		},
	}

	addSourceFlags(cmd)

	return cmd
}

func (a *app) runPlay(cmd *cobra.Command) error {
	s := a.settings
	logger := a.logger.With("module", "play")

	session, err := render.NewSessionFromSettings(s, a.registry, a.logger)
	if err != nil {
		return err
	}

	stream := render.NewStream(session)
	pc := s.ProcessorConfig()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(pc.SampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(pc.BlockSize) / pc.SampleRate * float64(time.Second)),
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	defer player.Close()

	logger.Info("playing", "ticks", session.Len(), "effects", session.Voice().Chain().Names())
	player.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-cmd.Context().Done():
			player.Pause()
			logger.Info("interrupted", "position", stream.Position())

			return cmd.Context().Err()
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	logger.Debug("playback finished", "position", stream.Position())

	return nil
}
