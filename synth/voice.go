// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"fmt"
)

// Voice is one chord tone: a primary sine with a slow pitch LFO and a
// slightly sharp secondary sine at half the gain.
type Voice struct {
	Frequency float64
	Gain      float64
	LFO       *LFO

	Primary   *Oscillator
	Secondary *Oscillator
}

// NewVoice creates the oscillators of a voice at f on ctx. rnd yields
// values in [0,1) and picks the LFO rate.
func NewVoice(ctx *Context, f float64, rnd func() float64) (*Voice, error) {
	if !(f > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, f)
	}

	gain := VoiceGain(f)

	primary, err := ctx.NewOscillator(f, gain)
	if err != nil {
		return nil, err
	}
	secondary, err := ctx.NewOscillator(f*DetuneRatio, gain/2)
	if err != nil {
		return nil, err
	}

	lfo := NewLFO(LFORateMin+rnd()*(LFORateMax-LFORateMin), f*LFODepthRatio)
	primary.Modulate(lfo)

	return &Voice{
		Frequency: f,
		Gain:      gain,
		LFO:       lfo,
		Primary:   primary,
		Secondary: secondary,
	}, nil
}

// Start starts both oscillators at when.
func (v *Voice) Start(when float64) error {
	return errors.Join(v.Primary.Start(when), v.Secondary.Start(when))
}

// Stop schedules both oscillators to end at when. A failure on one does
// not skip the other.
func (v *Voice) Stop(when float64) error {
	return errors.Join(v.Primary.Stop(when), v.Secondary.Stop(when))
}
