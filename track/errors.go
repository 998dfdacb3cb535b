// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLocator      = errors.New("empty track locator")
	ErrUnsupportedFormat = errors.New("no decoder accepts the track")
	ErrEmptyTrack        = errors.New("track decoded to no samples")
	ErrUnexpectedStatus  = errors.New("unexpected HTTP status")
	ErrTrackTooLarge     = errors.New("track exceeds size limit")
	ErrTrackClosed       = errors.New("track is closed")
)

// Stage names the step of Load that failed.
type Stage string

const (
	StageOpen   Stage = "open"
	StageFetch  Stage = "fetch"
	StageDecode Stage = "decode"
	StageBuffer Stage = "buffer"
)

// SourceError reports a track that could not be prepared.
type SourceError struct {
	Locator string
	Stage   Stage
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("track %q: %s: %v", e.Locator, e.Stage, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
