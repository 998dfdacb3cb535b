// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ik5/ambience/audio"
	"github.com/ik5/ambience/utils"
)

var _ audio.Source = (*Context)(nil)

// Context is one synthesis session: a set of oscillators summed into a
// master gain, rendered as a mono audio.Source. Time advances only as
// frames are read, so every automation event lands on an exact frame.
//
// A context is released once, either at the time given to CloseAt or
// immediately by Close. Within a frame, oscillator stops run before the
// release, so no oscillator outlives its context.
type Context struct {
	mu   sync.Mutex
	rate int

	frame  int64
	master *Param
	active []*Oscillator

	closeAt    float64
	released   bool
	releasedAt float64
	done       chan struct{}
}

// NewContext creates a context rendering at rate with the master gain at 0.
func NewContext(rate int) (*Context, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}

	c := &Context{
		rate:    rate,
		closeAt: math.Inf(1),
		done:    make(chan struct{}),
	}
	c.master = newParam(&c.mu, 0, 0, 1)

	return c, nil
}

func (c *Context) SampleRate() int { return c.rate }
func (c *Context) Channels() int   { return 1 }
func (c *Context) BufSize() int    { return 1024 }

// Master is the gain applied after summing every oscillator.
func (c *Context) Master() *Param { return c.master }

// CurrentTime is the time of the next frame to render, in seconds.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / float64(c.rate)
}

// NewOscillator creates an unstarted sine oscillator.
func (c *Context) NewOscillator(frequency, gain float64) (*Oscillator, error) {
	if !(frequency > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil, ErrContextClosed
	}

	return &Oscillator{
		ctx:       c,
		frequency: frequency,
		gain:      gain,
		stopAt:    math.Inf(1),
	}, nil
}

// ActiveVoices counts started oscillators that have not ended.
func (c *Context) ActiveVoices() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.active)
}

// CloseAt schedules the release of the context at t. An earlier pending
// release wins; a time in the past means the next frame.
func (c *Context) CloseAt(t float64) error {
	if !validTime(t) {
		return ErrInvalidTime
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrContextClosed
	}
	c.closeAt = min(c.closeAt, max(t, c.now()))

	return nil
}

// Close releases the context now, ending every oscillator. It is safe to
// call more than once.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.released {
		c.release(c.now())
	}

	return nil
}

// Done is closed when the context is released.
func (c *Context) Done() <-chan struct{} { return c.done }

// ReleasedAt is the context time of the release; ok is false before it.
func (c *Context) ReleasedAt() (t float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.releasedAt, c.released
}

// ReadSamples renders len(dst) frames. It returns io.EOF once the context
// is released, together with the frames rendered before the release.
func (c *Context) ReadSamples(dst []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return 0, io.EOF
	}

	rate := float64(c.rate)
	for i := range dst {
		t := c.now()

		var sum float64
		alive := c.active[:0]
		for _, o := range c.active {
			s, ok := o.render(t, rate)
			if ok {
				sum += s
				alive = append(alive, o)
			}
		}
		clear(c.active[len(alive):])
		c.active = alive

		gain := c.master.advance(t)

		if t >= c.closeAt {
			c.release(t)
			return i, io.EOF
		}

		dst[i] = utils.ClampSample(float32(sum * gain))
		c.frame++
	}

	return len(dst), nil
}

// release ends the session at t. Caller holds mu.
func (c *Context) release(t float64) {
	for _, o := range c.active {
		o.end(t)
	}
	c.active = nil

	c.released = true
	c.releasedAt = t
	close(c.done)

	log.Tracef("Context released at %.3fs", t)
}
