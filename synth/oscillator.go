// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
)

// Oscillator is a sine tone generator bound to one Context. It can be
// started and stopped once; a stopped oscillator is not reusable.
type Oscillator struct {
	ctx       *Context
	frequency float64
	gain      float64
	lfo       *LFO

	phase     float64 // [0, 1)
	started   bool
	startAt   float64
	stopAt    float64
	ended     bool
	stoppedAt float64
}

// Frequency is the unmodulated frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// Gain is the static output gain.
func (o *Oscillator) Gain() float64 { return o.gain }

// Modulate attaches l to the oscillator's frequency. Call before Start.
func (o *Oscillator) Modulate(l *LFO) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()

	o.lfo = l
}

// Start schedules the oscillator to sound from when on.
func (o *Oscillator) Start(when float64) error {
	if !validTime(when) {
		return ErrInvalidTime
	}

	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()

	if o.ctx.released {
		return ErrContextClosed
	}
	if o.started {
		return ErrAlreadyStarted
	}

	o.started = true
	o.startAt = when
	o.ctx.active = append(o.ctx.active, o)

	return nil
}

// Stop schedules the end of the oscillator at when, or at its start time
// if that is later.
func (o *Oscillator) Stop(when float64) error {
	if !validTime(when) {
		return ErrInvalidTime
	}

	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()

	switch {
	case !o.started:
		return ErrNotStarted
	case o.ended || !math.IsInf(o.stopAt, 1):
		return ErrAlreadyStopped
	}

	o.stopAt = max(when, o.startAt)

	return nil
}

// StoppedAt is the context time of the frame at which the oscillator
// went silent. ok is false while it still runs.
func (o *Oscillator) StoppedAt() (t float64, ok bool) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()

	return o.stoppedAt, o.ended
}

// render returns the next sample at context time t, ending the oscillator
// when t reaches its stop time. Caller holds ctx.mu.
func (o *Oscillator) render(t, sampleRate float64) (sample float64, alive bool) {
	if t >= o.stopAt {
		o.end(t)
		return 0, false
	}
	if t < o.startAt {
		return 0, true
	}

	f := o.frequency
	if o.lfo != nil {
		f += o.lfo.sample(sampleRate)
	}

	sample = o.gain * math.Sin(2*math.Pi*o.phase)

	o.phase += f / sampleRate
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}

	return sample, true
}

func (o *Oscillator) end(t float64) {
	o.ended = true
	o.stoppedAt = t
}
