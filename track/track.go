// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/device"
)

// closedChan is returned by FadeDone when no fade is running.
var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Track plays a buffered ambient loop through one device player. The
// player is created once, at volume 0, and reused by every Start and Stop.
type Track struct {
	clk    clock.Clock
	loop   *audio.Loop
	player device.Player

	mu     sync.Mutex
	fade   *Fade
	closed bool
}

// New creates a stopped track over buf. clk drives the fades; nil uses the
// wall clock.
func New(dev device.Device, buf *audio.Buffer, clk clock.Clock) (*Track, error) {
	if clk == nil {
		clk = clock.New()
	}

	loop := audio.NewLoop(buf)
	player, err := dev.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("track player: %w", err)
	}
	player.SetVolume(0)

	return &Track{
		clk:    clk,
		loop:   loop,
		player: player,
	}, nil
}

// Start resumes playback and fades up to Ceiling from the current volume.
// A refused Play is returned but the fade still runs, so a later
// successful Play is already at volume.
func (t *Track) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTrackClosed
	}
	t.cancelFade()

	playErr := t.player.Play()
	t.fade = StartFade(t.clk, t.player, Ceiling, StepUp, nil)

	log.Debugf("Track fading in from %.3f", t.fade.From())

	if playErr != nil {
		return fmt.Errorf("play track: %w", playErr)
	}

	return nil
}

// Stop fades down to 0 and then pauses. The loop position is kept.
func (t *Track) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTrackClosed
	}
	t.cancelFade()

	t.fade = StartFade(t.clk, t.player, 0, StepDown, t.player.Pause)

	log.Debugf("Track fading out from %.3f", t.fade.From())

	return nil
}

// Close cancels any fade, pauses and releases the player. It is safe to
// call more than once.
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.cancelFade()

	t.player.Pause()
	if err := t.player.Close(); err != nil && !errors.Is(err, device.ErrPlayerClosed) {
		return fmt.Errorf("close track player: %w", err)
	}

	return nil
}

// cancelFade stops the running fade, if any. Caller holds mu.
func (t *Track) cancelFade() {
	if t.fade != nil {
		t.fade.Cancel()
		t.fade = nil
	}
}

// Volume is the player volume.
func (t *Track) Volume() float64 { return t.player.Volume() }

// Playing reports whether the player is playing.
func (t *Track) Playing() bool { return t.player.IsPlaying() }

// Position is the next sample index of the loop.
func (t *Track) Position() int { return t.loop.Position() }

// FadeDone is closed once the current fade settles or is cancelled. With
// no fade it is already closed.
func (t *Track) FadeDone() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fade == nil {
		return closedChan
	}

	return t.fade.Done()
}
