// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrUnavailable     = errors.New("audio output unavailable")
	ErrFormatMismatch  = errors.New("source format does not match device")
	ErrPlayerClosed    = errors.New("player is closed")
	ErrPlaybackRefused = errors.New("playback refused by output")
)
