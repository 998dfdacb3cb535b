// SPDX-License-Identifier: EPL-2.0

package ambience

import (
	"context"

	"github.com/ik5/ambience/track"
)

// prepare loads the track and offers it to the engine. Any failure leaves
// the engine on the pad; it is logged at debug level only.
func (e *Engine) prepare(ctx context.Context, locator string) {
	defer close(e.prepared)

	buf, err := e.load(ctx, locator, e.reg, e.dev.SampleRate())
	if err != nil {
		log.Debugf("Track unavailable, keeping %v mode: %v", ModeSynth, err)
		return
	}

	tr, err := track.New(e.dev, buf, e.clk)
	if err != nil {
		log.Debugf("Track player unavailable, keeping %v mode: %v", ModeSynth, err)
		return
	}

	e.adopt(tr)
}

// adopt installs a prepared track. While a session plays the switch waits
// for the next start; after Close the track is released at once.
func (e *Engine) adopt(tr *track.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		if err := tr.Close(); err != nil {
			log.Debugf("Closing late track: %v", err)
		}
		return
	}

	e.track = tr
	if e.playing {
		log.Debugf("Track ready, switching to %v mode at next start", ModeFile)
		return
	}

	e.mode = ModeFile
	log.Infof("Track ready, using %v mode", ModeFile)
}
