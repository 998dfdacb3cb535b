// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded mono track held in memory.
type Buffer struct {
	Samples []float32
	Rate    int
}

// Duration of the buffered audio.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.Rate <= 0 {
		return 0
	}

	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.Rate)
}

// Collect drains src through a resample -> mono pipeline and keeps every
// sample in memory, so playback of the result can never stall on I/O.
// Samples stay float32 in [-1,1] at targetRate.
//
// ctx is checked between reads. A positive maxSamples bounds the result;
// a longer stream fails with ErrTooLong.
func Collect(ctx context.Context, src Source, targetRate, bufferSize, maxSamples int) (*Buffer, error) {
	if targetRate <= 0 {
		return nil, ErrInvalidRate
	}
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}

	var stream Source = src
	if src.SampleRate() != targetRate {
		stream = NewResampler(stream, targetRate)
	}
	mono := NewMonoMixer(stream)

	// start with ~2 seconds and let append grow it
	initial := targetRate * 2
	if maxSamples > 0 {
		initial = min(initial, maxSamples)
	}
	out := make([]float32, 0, initial)
	buf := make([]float32, bufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect: %w", err)
		}

		n, err := mono.ReadSamples(buf)
		if maxSamples > 0 && len(out)+n > maxSamples {
			return nil, fmt.Errorf("collect: %w after %d samples", ErrTooLong, maxSamples)
		}
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collect: %w", err)
		}
	}

	return &Buffer{Samples: out, Rate: targetRate}, nil
}
