// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"

	"github.com/ik5/ambience/audio"
)

// SampleRate is the rate every device runs at.
const SampleRate = 44100

// Device creates players over mono float32 sources.
type Device interface {
	SampleRate() int
	NewPlayer(src audio.Source) (Player, error)
}

// Player is one output stream. The player owns its source and closes it on
// Close.
type Player interface {
	// Play starts or resumes pulling from the source. An error means the
	// output refused to start; the player stays usable.
	Play() error
	Pause()
	IsPlaying() bool
	Volume() float64
	// SetVolume clamps v into [0,1].
	SetVolume(v float64)
	Close() error
}

func checkFormat(src audio.Source, rate int) error {
	if src.SampleRate() != rate || src.Channels() != 1 {
		return fmt.Errorf("%w: got %d Hz / %d ch, want %d Hz mono",
			ErrFormatMismatch, src.SampleRate(), src.Channels(), rate)
	}

	return nil
}
