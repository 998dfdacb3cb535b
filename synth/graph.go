// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Build creates one voice per chord tone on ctx, starts every oscillator at
// the current context time and ramps the master gain from 0 to
// MasterCeiling over FadeIn. rnd yields values in [0,1); nil uses
// math/rand/v2.
func Build(ctx *Context, chord Chord, rnd func() float64) ([]*Voice, error) {
	if len(chord) == 0 {
		return nil, ErrEmptyChord
	}
	if rnd == nil {
		rnd = rand.Float64
	}

	voices := make([]*Voice, 0, len(chord))
	for _, f := range chord {
		v, err := NewVoice(ctx, f, rnd)
		if err != nil {
			return nil, fmt.Errorf("voice %v Hz: %w", f, err)
		}
		voices = append(voices, v)
	}

	now := ctx.CurrentTime()
	for _, v := range voices {
		if err := v.Start(now); err != nil {
			return nil, fmt.Errorf("start voice %v Hz: %w", v.Frequency, err)
		}
	}

	master := ctx.Master()
	if err := master.SetValueAtTime(0, now); err != nil {
		return nil, err
	}
	if err := master.LinearRampToValueAtTime(MasterCeiling, now+FadeIn.Seconds()); err != nil {
		return nil, err
	}

	return voices, nil
}

// Release fades the master gain from wherever it is to 0 over FadeOut,
// schedules every oscillator to stop when the fade ends and the context
// to be released in the same frame. It returns the fade end time.
//
// Each step is attempted even if an earlier one fails; the failures are
// joined.
func Release(ctx *Context, voices []*Voice) (float64, error) {
	now := ctx.CurrentTime()
	end := now + FadeOut.Seconds()

	var errs []error

	master := ctx.Master()
	if err := master.CancelAndHoldAtTime(now); err != nil {
		errs = append(errs, fmt.Errorf("hold master: %w", err))
	}
	if err := master.LinearRampToValueAtTime(0, end); err != nil {
		errs = append(errs, fmt.Errorf("fade master: %w", err))
	}

	for _, v := range voices {
		if err := v.Stop(end); err != nil {
			errs = append(errs, fmt.Errorf("stop voice %v Hz: %w", v.Frequency, err))
		}
	}

	if err := ctx.CloseAt(end); err != nil {
		errs = append(errs, fmt.Errorf("close context: %w", err))
	}

	return end, errors.Join(errs...)
}
