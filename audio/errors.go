// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rate must be positive")
	ErrSourceClosed   = errors.New("source is closed")
	ErrTooLong        = errors.New("stream exceeds sample limit")
)
