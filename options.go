// SPDX-License-Identifier: EPL-2.0

package ambience

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/device"
)

type loadFunc func(ctx context.Context, locator string, reg *audio.Registry, sampleRate int) (*audio.Buffer, error)

// Option configures the collaborators of an Engine.
type Option func(*Engine)

// WithDevice sets the output device. The default is the system output,
// or a headless device when none can be opened.
func WithDevice(dev device.Device) Option {
	return func(e *Engine) {
		e.dev = dev
	}
}

// WithClock sets the clock driving file fades.
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) {
		e.clk = clk
	}
}

// WithRegistry sets the decoders used to load the track.
func WithRegistry(reg *audio.Registry) Option {
	return func(e *Engine) {
		e.reg = reg
	}
}

func withLoader(load loadFunc) Option {
	return func(e *Engine) {
		e.load = load
	}
}
