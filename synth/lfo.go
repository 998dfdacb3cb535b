// SPDX-License-Identifier: EPL-2.0

package synth

import "math"

// LFO is a sine modulator in Hz added to an oscillator's frequency.
type LFO struct {
	Rate  float64 // Hz
	Depth float64 // peak deviation in Hz

	phase float64 // [0, 1)
}

// NewLFO creates an LFO with the given rate and depth.
func NewLFO(rate, depth float64) *LFO {
	return &LFO{Rate: rate, Depth: depth}
}

// sample returns the current deviation and advances one frame.
func (l *LFO) sample(sampleRate float64) float64 {
	v := l.Depth * math.Sin(2*math.Pi*l.phase)

	l.phase += l.Rate / sampleRate
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}

	return v
}
