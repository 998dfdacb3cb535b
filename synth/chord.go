// SPDX-License-Identifier: EPL-2.0

package synth

import "time"

// Chord is a set of tone frequencies in Hz.
type Chord []float64

// DefaultChord is C2 G2 C3 G3 C4: a root with octave and fifth doublings
// across two octaves.
var DefaultChord = Chord{65.41, 98.00, 130.81, 196.00, 261.63}

const (
	// DetuneRatio sets the secondary oscillator of a voice slightly sharp.
	DetuneRatio = 1.002
	// LFODepthRatio is the LFO depth as a fraction of the voice frequency.
	LFODepthRatio = 0.003
	// LFORateMin is the lowest LFO rate a voice draws, in Hz.
	LFORateMin = 0.05
	// LFORateMax bounds the LFO rate from above, exclusive, in Hz.
	LFORateMax = 0.15

	// MasterCeiling is the master gain once faded in.
	MasterCeiling = 0.15
	// FadeIn is the master ramp from 0 to MasterCeiling on Start.
	FadeIn = 2 * time.Second
	// FadeOut is the master ramp down to 0 on Stop.
	FadeOut = 1 * time.Second
)

// VoiceGain is the primary gain of a tone at f. Lower tones are louder.
func VoiceGain(f float64) float64 {
	switch {
	case f < 100:
		return 0.15
	case f < 200:
		return 0.08
	default:
		return 0.04
	}
}
