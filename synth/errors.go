// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidTime       = errors.New("automation time must be finite and non-negative")
	ErrInvalidFrequency  = errors.New("frequency must be positive")
	ErrEmptyChord        = errors.New("chord has no tones")
	ErrContextClosed     = errors.New("context is closed")
	ErrAlreadyStarted    = errors.New("oscillator already started")
	ErrNotStarted        = errors.New("oscillator not started")
	ErrAlreadyStopped    = errors.New("oscillator already stopped")
	ErrPadClosed         = errors.New("pad is closed")
	ErrPadRunning        = errors.New("pad is already running")
)
