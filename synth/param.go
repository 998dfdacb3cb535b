// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"slices"
	"sync"

	"github.com/ik5/ambience/utils"
)

type eventKind int

const (
	setEvent eventKind = iota
	rampEvent
)

type event struct {
	kind  eventKind
	time  float64
	value float64
}

// Param is a scalar driven by a timeline of automation events, evaluated
// once per rendered frame. Times are in context seconds.
//
// A ramp runs from the event before it to its own time and value. Once the
// render time reaches an event the param holds exactly that event's value.
type Param struct {
	mu       *sync.Mutex
	min, max float64

	value       float64
	anchorTime  float64
	anchorValue float64
	events      []event
}

func newParam(mu *sync.Mutex, value, lo, hi float64) *Param {
	value = utils.Clamp(value, lo, hi)

	return &Param{
		mu:          mu,
		min:         lo,
		max:         hi,
		value:       value,
		anchorValue: value,
	}
}

// Value is the value at the last rendered frame.
func (p *Param) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.value
}

// SetValueAtTime jumps to v at t.
func (p *Param) SetValueAtTime(v, t float64) error {
	return p.schedule(setEvent, v, t)
}

// LinearRampToValueAtTime ramps from the previous event to v, arriving at t.
func (p *Param) LinearRampToValueAtTime(v, t float64) error {
	return p.schedule(rampEvent, v, t)
}

// CancelAndHoldAtTime drops every event after t and holds the value the
// timeline would have had at t. A ramp spanning t is cut short at t.
func (p *Param) CancelAndHoldAtTime(t float64) error {
	if !validTime(t) {
		return ErrInvalidTime
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	held := p.valueAt(t)

	kind := setEvent
	i := slices.IndexFunc(p.events, func(e event) bool { return e.time > t })
	if i >= 0 {
		if p.events[i].kind == rampEvent {
			kind = rampEvent
		}
		p.events = p.events[:i]
	}
	p.events = append(p.events, event{kind: kind, time: t, value: held})

	return nil
}

func (p *Param) schedule(kind eventKind, v, t float64) error {
	if !validTime(t) {
		return ErrInvalidTime
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	e := event{kind: kind, time: t, value: utils.Clamp(v, p.min, p.max)}
	i, _ := slices.BinarySearchFunc(p.events, t, func(e event, t float64) int {
		if e.time <= t {
			return -1
		}
		return 1
	})
	p.events = slices.Insert(p.events, i, e)

	return nil
}

// valueAt evaluates the pending timeline at t without consuming it.
// Caller holds mu.
func (p *Param) valueAt(t float64) float64 {
	at, av, v := p.anchorTime, p.anchorValue, p.value

	for _, e := range p.events {
		if e.time <= t {
			at, av, v = e.time, e.value, e.value
			continue
		}
		if e.kind == rampEvent && t > at {
			return av + (e.value-av)*(t-at)/(e.time-at)
		}
		return v
	}

	return v
}

// advance consumes every event at or before t and returns the value at t.
// Caller holds mu.
func (p *Param) advance(t float64) float64 {
	n := 0
	for _, e := range p.events {
		if e.time > t {
			break
		}
		p.anchorTime, p.anchorValue, p.value = e.time, e.value, e.value
		n++
	}
	p.events = p.events[n:]
	p.value = p.valueAt(t)

	return p.value
}

func validTime(t float64) bool {
	return t >= 0 && !math.IsInf(t, 0) && !math.IsNaN(t)
}
