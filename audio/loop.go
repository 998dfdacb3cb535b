// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Loop plays a Buffer over and over. It never reports io.EOF until closed,
// and it keeps its position between reads, so a paused consumer resumes
// exactly where it stopped.
type Loop struct {
	buf *Buffer

	mu     sync.Mutex
	pos    int
	closed bool
}

func NewLoop(buf *Buffer) *Loop {
	return &Loop{buf: buf}
}

func (l *Loop) SampleRate() int { return l.buf.Rate }
func (l *Loop) Channels() int   { return 1 }
func (l *Loop) BufSize() int    { return 4096 }

// Position is the index of the next sample to be read.
func (l *Loop) Position() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.pos
}

func (l *Loop) ReadSamples(dst []float32) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, io.EOF
	}

	samples := l.buf.Samples
	if len(samples) == 0 {
		return 0, io.EOF
	}

	written := 0
	for written < len(dst) {
		n := copy(dst[written:], samples[l.pos:])
		written += n
		l.pos += n
		if l.pos == len(samples) {
			l.pos = 0
		}
	}

	return written, nil
}

func (l *Loop) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	return nil
}
