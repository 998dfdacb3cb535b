// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// waveFunc returns the value of a frame on one channel.
type waveFunc func(frame, channel int) float32

// mockSource renders a fixed number of frames from a waveFunc.
type mockSource struct {
	rate   int
	chans  int
	frames int
	pos    int
	wave   waveFunc
	closed bool
}

func newMockSource(sampleRate, channels, frames int, wave waveFunc) *mockSource {
	return &mockSource{rate: sampleRate, chans: channels, frames: frames, wave: wave}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newConstantSource(sampleRate, channels, frames, 0)
}

func newSineSource(sampleRate, channels, frames int, freq float64) *mockSource {
	step := 2 * math.Pi * freq / float64(sampleRate)
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(step * float64(frame)))
	})
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (m *mockSource) SampleRate() int { return m.rate }
func (m *mockSource) Channels() int   { return m.chans }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	left := m.frames - m.pos
	if left <= 0 {
		return 0, io.EOF
	}

	count := min(len(dst)/m.chans, left)
	for f := range count {
		for c := range m.chans {
			dst[f*m.chans+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += count

	if m.pos == m.frames {
		return count * m.chans, io.EOF
	}
	return count * m.chans, nil
}
