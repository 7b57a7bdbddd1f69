package cue

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const sampleRate = beep.SampleRate(44100)

// NewPlayer initializes the speaker and returns a tone player. When no
// audio device is available a silent player is returned instead of an
// error, so a headless session degrades to no sound.
func NewPlayer() Player {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return &silentPlayer{}
	}
	return &tonePlayer{}
}

// tonePlayer synthesizes cue melodies through the speaker.
type tonePlayer struct{}

// Play synthesizes the melody for name and blocks until it finishes.
// Unknown names and "None" are silent no-ops.
func (p *tonePlayer) Play(name string) error {
	melody, ok := melodies[name]
	if !ok {
		return nil
	}

	streamers := make([]beep.Streamer, 0, len(melody)+1)
	for _, n := range melody {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return fmt.Errorf("synthesizing %s tone: %w", name, err)
		}
		streamers = append(streamers, beep.Take(sampleRate.N(n.duration), tone))
	}

	done := make(chan struct{})
	streamers = append(streamers, beep.Callback(func() { close(done) }))

	speaker.Play(beep.Seq(streamers...))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return nil
}

// silentPlayer is used when audio initialization fails.
type silentPlayer struct{}

func (p *silentPlayer) Play(_ string) error {
	return nil
}
