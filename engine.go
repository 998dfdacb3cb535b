// SPDX-License-Identifier: EPL-2.0

package ambience

import (
	"context"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/device"
	"github.com/ik5/ambience/synth"
	"github.com/ik5/ambience/track"
)

// Engine is one ambience session. Its methods never return errors and never
// block on audio: failures are logged and the engine degrades to silence
// or to the pad.
type Engine struct {
	dev  device.Device
	clk  clock.Clock
	reg  *audio.Registry
	load loadFunc

	pad *synth.Pad

	mu      sync.Mutex
	mode    Mode
	playing bool
	track   *track.Track
	closed  bool

	cancel   context.CancelFunc
	prepared chan struct{}
}

// New creates a stopped engine. A non-empty locator is loaded in the
// background; until it is ready, or if it never is, the engine plays the
// pad.
func New(locator string, opts ...Option) *Engine {
	e := &Engine{
		load:     track.Load,
		mode:     ModeSynth,
		prepared: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clk == nil {
		e.clk = clock.New()
	}
	if e.reg == nil {
		e.reg = track.Decoders()
	}
	if e.dev == nil {
		e.dev = defaultDevice(e.clk)
	}
	e.pad = synth.NewPad(e.dev, synth.DefaultChord, e.clk)

	locator = strings.TrimSpace(locator)
	if locator == "" {
		close(e.prepared)
		return e
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go e.prepare(ctx, locator)

	return e
}

func defaultDevice(clk clock.Clock) device.Device {
	dev, err := device.OpenOto()
	if err != nil {
		log.Warnf("No audio output, running headless: %v", err)
		return device.NewHeadless(clk)
	}

	return dev
}

// Toggle flips the intended state and starts or stops the active backend.
// The flag flips even when the backend fails to start.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	if e.playing {
		e.stop()
	} else {
		e.start()
	}
	e.playing = !e.playing
}

// start runs the backend of the current mode. Caller holds mu.
func (e *Engine) start() {
	if e.track != nil && e.mode != ModeFile {
		log.Debugf("Switching to %v mode", ModeFile)
		e.mode = ModeFile
		// the pad may still be fading out from the last stop
		e.pad.Cut()
	}

	var err error
	switch e.mode {
	case ModeFile:
		err = e.track.Start()
	default:
		err = e.pad.Start()
	}
	if err != nil {
		log.Debugf("Starting %v backend: %v", e.mode, err)
	}
}

// stop fades the current backend out. Caller holds mu.
func (e *Engine) stop() {
	var err error
	switch e.mode {
	case ModeFile:
		err = e.track.Stop()
	default:
		err = e.pad.Stop()
	}
	if err != nil {
		log.Debugf("Stopping %v backend: %v", e.mode, err)
	}
}

// IsPlaying reports the intended state set by Toggle.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.playing
}

// Audible reports whether a backend is actually producing sound, fades
// included. It differs from IsPlaying while fading out and when the output
// refused to play.
func (e *Engine) Audible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	if e.track != nil && e.track.Playing() {
		return true
	}

	return e.pad.Audible()
}

// Mode is the backend used by the current or next session.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mode
}

// Prepared is closed once track loading has finished, whatever its
// outcome. Without a locator it is closed from the start.
func (e *Engine) Prepared() <-chan struct{} {
	return e.prepared
}

// Close tears everything down immediately, without fades, and cancels a
// pending load. Later calls, and Toggle after Close, do nothing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.playing = false

	if e.cancel != nil {
		e.cancel()
	}
	if err := e.pad.Close(); err != nil {
		log.Debugf("Closing pad: %v", err)
	}
	if e.track != nil {
		if err := e.track.Close(); err != nil {
			log.Debugf("Closing track: %v", err)
		}
	}

	log.Debugf("Engine closed")
}
