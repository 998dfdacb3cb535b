// SPDX-License-Identifier: EPL-2.0

package ambience

// Mode is the backend of a session.
type Mode int

const (
	// ModeSynth plays the procedural pad.
	ModeSynth Mode = iota
	// ModeFile plays the buffered track.
	ModeFile
)

func (m Mode) String() string {
	switch m {
	case ModeSynth:
		return "synth"
	case ModeFile:
		return "file"
	default:
		return "unknown"
	}
}
